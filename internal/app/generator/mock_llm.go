package generator

import (
	"context"
	"strings"
	"sync"
)

const mockSentence = "This placeholder sentence stands in for generated copy so local runs never call external models."

// MockLLM answers without calling an external model. Used for local runs and tests.
type MockLLM struct {
	// Response, when set, is returned verbatim.
	Response string
	// Err, when set, fails every call.
	Err error

	mu      sync.Mutex
	prompts []Prompt
}

func (m *MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}

	// Roughly half the token budget in words, fifteen words per sentence.
	sentences := prompt.MaxTokens / 2 / 15
	if sentences < 1 {
		sentences = 1
	}
	var sb strings.Builder
	sb.WriteString("# Draft\n\n")
	for i := 0; i < sentences; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(mockSentence)
	}
	return sb.String(), nil
}

// Prompts returns every prompt received so far.
func (m *MockLLM) Prompts() []Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Prompt, len(m.prompts))
	copy(out, m.prompts)
	return out
}
