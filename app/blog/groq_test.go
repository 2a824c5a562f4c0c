package blog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestGroq_Write(t *testing.T) {
	mock := &OpenAIClientMock{
		CreateChatCompletionFunc: func(
			ctx context.Context,
			req openai.ChatCompletionRequest,
		) (openai.ChatCompletionResponse, error) {
			assert.Equal(t, openai.ChatCompletionRequest{
				Model: DefaultGroqModel,
				Messages: []openai.ChatCompletionMessage{
					{Role: "system", Content: persona},
					{Role: "user", Content: "write about chips"},
				},
				MaxTokens: 2048,
			}, req)
			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{
					{Message: openai.ChatCompletionMessage{Content: "  Text.\n"}},
					{Message: openai.ChatCompletionMessage{Content: "second"}},
				},
			}, nil
		},
	}

	g := &Groq{log: slog.Default(), cl: mock, model: DefaultGroqModel, maxTokens: 2048}

	resp, err := g.Write(context.Background(), "write about chips")
	require.NoError(t, err)
	assert.Equal(t, "  Text.\n", resp, "content must be returned verbatim")
	assert.Len(t, mock.CreateChatCompletionCalls(), 1)
}

func TestGroq_WriteErrors(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		g := &Groq{log: slog.Default(), cl: &OpenAIClientMock{
			CreateChatCompletionFunc: func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, errors.New("rate limited")
			},
		}}

		_, err := g.Write(context.Background(), "prompt")
		assert.EqualError(t, err, "create chat completion: rate limited")
	})

	t.Run("no choices", func(t *testing.T) {
		g := &Groq{log: slog.Default(), cl: &OpenAIClientMock{
			CreateChatCompletionFunc: func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, nil
			},
		}}

		_, err := g.Write(context.Background(), "prompt")
		assert.EqualError(t, err, "no choices in response")
	})
}

func TestGroq_WriteOverHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer groq-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.3-70b-versatile", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "prompt", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "llama-3.3-70b-versatile",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Text."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 2, "total_tokens": 12}
		}`))
	}))
	defer ts.Close()

	g := NewGroq(GroqParams{Client: ts.Client(), APIKey: "groq-key", BaseURL: ts.URL + "/openai/v1"})

	resp, err := g.Write(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Text.", resp)
}
