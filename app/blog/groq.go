package blog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
)

// Default parameters of the Groq API.
const (
	DefaultGroqURL   = "https://api.groq.com/openai/v1"
	DefaultGroqModel = "llama-3.3-70b-versatile"
)

const persona = "You are an expert blog writer with years of experience in journalism and content creation. " +
	"You craft engaging, insightful pieces that balance informative reporting with a distinctive voice. " +
	"Your writing is known for its clarity, creativity, and human-like quality."

//go:generate moq -out mock_openai_client.go . OpenAIClient

// OpenAIClient is interface for OpenAI client with the possibility to mock it
type OpenAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Groq is a client to make requests to Groq's OpenAI-compatible completions API.
type Groq struct {
	log       *slog.Logger
	cl        OpenAIClient
	model     string
	maxTokens int
}

// GroqParams defines parameters for Groq client.
type GroqParams struct {
	Logger    *slog.Logger
	Client    *http.Client
	APIKey    string
	BaseURL   string // DefaultGroqURL if empty
	Model     string // DefaultGroqModel if empty
	MaxTokens int    // zero leaves the provider's default
}

// NewGroq creates new Groq client.
func NewGroq(p GroqParams) *Groq {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	if p.BaseURL == "" {
		p.BaseURL = DefaultGroqURL
	}
	if p.Model == "" {
		p.Model = DefaultGroqModel
	}

	config := openai.DefaultConfig(p.APIKey)
	config.BaseURL = p.BaseURL
	if p.Client != nil {
		config.HTTPClient = p.Client
	}

	return &Groq{
		log:       p.Logger,
		cl:        &loggingClient{log: p.Logger, cl: openai.NewClientWithConfig(config)},
		model:     p.Model,
		maxTokens: p.MaxTokens,
	}
}

// Write asks the model to complete the prompt and returns the first choice verbatim.
func (g *Groq) Write(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: persona},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := g.cl.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

type loggingClient struct {
	log *slog.Logger
	cl  OpenAIClient
}

func (l *loggingClient) CreateChatCompletion(
	ctx context.Context,
	req openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	l.log.DebugCtx(ctx, "sending request to groq", slog.String("model", req.Model))
	resp, err := l.cl.CreateChatCompletion(ctx, req)
	if err != nil {
		l.log.DebugCtx(ctx, "groq request failed", slog.Any("err", err))
		return resp, err
	}
	l.log.DebugCtx(ctx, "response received from groq", slog.Int("total_tokens", resp.Usage.TotalTokens))
	return resp, nil
}
