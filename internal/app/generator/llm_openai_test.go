package generator_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"contentgenius/internal/app/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAILLMValidation(t *testing.T) {
	_, err := generator.NewOpenAILLM(generator.LLMSettings{Model: "gpt-4"})
	assert.Error(t, err)

	_, err = generator.NewOpenAILLM(generator.LLMSettings{APIKey: "key"})
	assert.Error(t, err)
}

func TestNewLLMClient(t *testing.T) {
	client, err := generator.NewLLMClient(generator.LLMSettings{Provider: generator.ProviderMock})
	require.NoError(t, err)
	assert.IsType(t, &generator.MockLLM{}, client)

	_, err = generator.NewLLMClient(generator.LLMSettings{Provider: "bard"})
	assert.Error(t, err)
}

func TestOpenAILLMComplete(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Generated text."}}]
		}`))
	}))
	defer srv.Close()

	llm, err := generator.NewOpenAILLM(generator.LLMSettings{
		APIKey:  "test-key",
		Model:   "gpt-4",
		BaseURL: srv.URL + "/",
	})
	require.NoError(t, err)

	text, err := llm.Complete(context.Background(), generator.Prompt{
		System:      "system",
		User:        "user",
		Model:       "gpt-3.5-turbo",
		MaxTokens:   200,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Generated text.", text)

	assert.Equal(t, "gpt-3.5-turbo", body["model"])
	assert.EqualValues(t, 200, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-9)
	messages, ok := body["messages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestOpenAILLMCompleteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
	}))
	defer srv.Close()

	llm, err := generator.NewOpenAILLM(generator.LLMSettings{APIKey: "k", Model: "gpt-4", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = llm.Complete(context.Background(), generator.Prompt{User: "x"})
	assert.Error(t, err)
}
