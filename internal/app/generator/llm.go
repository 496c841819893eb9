package generator

import (
	"context"
	"fmt"
	"time"
)

// Prompt is a single chat completion request.
type Prompt struct {
	System      string
	User        string
	Model       string
	MaxTokens   int
	Temperature float64
}

// LLMClient abstracts the text generation backend so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings configures the concrete client.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

const (
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

func NewLLMClient(cfg LLMSettings) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAILLM(cfg)
	case ProviderMock:
		return &MockLLM{}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
