package blog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Semior001/newsblog/app/news"
	"github.com/Semior001/newsblog/app/store"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newsServer(t *testing.T, body string) (*httptest.Server, *int32) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, err := w.Write([]byte(body))
		require.NoError(t, err)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func writerMock(content string, err error) *OpenAIClientMock {
	return &OpenAIClientMock{
		CreateChatCompletionFunc: func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			if err != nil {
				return openai.ChatCompletionResponse{}, err
			}
			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
			}, nil
		},
	}
}

func newTestService(ts *httptest.Server, mock OpenAIClient, archive store.Interface) *Service {
	svc := NewService(
		slog.Default(),
		news.NewSerper(news.SerperParams{Client: *ts.Client(), BaseURL: ts.URL}),
		&Groq{log: slog.Default(), cl: mock, model: DefaultGroqModel},
		archive,
	)
	svc.now = func() time.Time { return time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Generate(t *testing.T) {
	ts, _ := newsServer(t, `{"news": [{"title": "Factory halts output amid attack fears", "source": "Example Times"}]}`)
	mock := writerMock("Text.", nil)

	svc := newTestService(ts, mock, nil)

	post, err := svc.Generate(context.Background(), Request{
		Topic:       "chip shortage",
		Preferences: &store.Preferences{Tone: "witty", HumorLevel: "high"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	post.ID = ""
	assert.Equal(t, store.Post{
		Topic: "chip shortage",
		Requested: store.Preferences{
			Tone:        "witty",
			Perspective: "balanced",
			Audience:    "general",
			HumorLevel:  "high",
		},
		Emotion:       store.Negative,
		Humor:         "subtle",
		ArticlesCount: 1,
		Blog:          "Text.",
		CreatedAt:     time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC),
	}, post)

	calls := mock.CreateChatCompletionCalls()
	require.Len(t, calls, 1)
	prompt := calls[0].ChatCompletionRequest.Messages[1].Content
	assert.Contains(t, prompt, "Humor level: subtle")
	assert.Contains(t, prompt, "matching the negative emotion")
	assert.Contains(t, prompt, "- Factory halts output amid attack fears")
}

func TestService_GenerateNoNews(t *testing.T) {
	ts, _ := newsServer(t, `{}`)
	mock := writerMock("Text.", nil)

	post, err := newTestService(ts, mock, nil).Generate(context.Background(), Request{Topic: "nothing"})
	require.NoError(t, err)

	assert.Equal(t, "Text.", post.Blog)
	assert.Equal(t, store.Neutral, post.Emotion)
	assert.Equal(t, "moderate", post.Humor)

	calls := mock.CreateChatCompletionCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].ChatCompletionRequest.Messages[1].Content, "No headlines available")
}

func TestService_GenerateHumorNone(t *testing.T) {
	ts, _ := newsServer(t, `{"news": [{"title": "war"}]}`)

	post, err := newTestService(ts, writerMock("Text.", nil), nil).Generate(context.Background(), Request{
		Topic:       "war",
		Preferences: &store.Preferences{HumorLevel: "none"},
	})
	require.NoError(t, err)
	assert.Equal(t, store.Negative, post.Emotion)
	assert.Equal(t, "none", post.Humor)
}

func TestService_GenerateErrors(t *testing.T) {
	t.Run("no topic", func(t *testing.T) {
		ts, newsCalls := newsServer(t, `{}`)
		mock := writerMock("Text.", nil)

		_, err := newTestService(ts, mock, nil).Generate(context.Background(), Request{Topic: "  "})

		var berr *Error
		require.ErrorAs(t, err, &berr)
		assert.Equal(t, KindValidation, berr.Kind)
		assert.False(t, berr.Retryable())
		assert.ErrorIs(t, err, ErrNoTopic)
		assert.Zero(t, atomic.LoadInt32(newsCalls))
		assert.Empty(t, mock.CreateChatCompletionCalls())
	})

	t.Run("news transport failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()
		mock := writerMock("Text.", nil)

		_, err := newTestService(ts, mock, nil).Generate(context.Background(), Request{Topic: "topic"})

		var berr *Error
		require.ErrorAs(t, err, &berr)
		assert.Equal(t, KindUpstreamNews, berr.Kind)
		assert.True(t, berr.Retryable())
		assert.Contains(t, err.Error(), "search news")
		assert.Empty(t, mock.CreateChatCompletionCalls())
	})

	t.Run("generation failure", func(t *testing.T) {
		ts, _ := newsServer(t, `{"news": []}`)

		_, err := newTestService(ts, writerMock("", errors.New("invalid api key")), nil).
			Generate(context.Background(), Request{Topic: "topic"})

		var berr *Error
		require.ErrorAs(t, err, &berr)
		assert.Equal(t, KindUpstreamGeneration, berr.Kind)
		assert.EqualError(t, err, "write post: create chat completion: invalid api key")
	})
}

type archiveFunc func(ctx context.Context, p store.Post) error

func (f archiveFunc) Put(ctx context.Context, p store.Post) error { return f(ctx, p) }

func (archiveFunc) Get(context.Context, string) (store.Post, error) {
	return store.Post{}, store.ErrNotFound
}

func (archiveFunc) List(context.Context, store.ListRequest) ([]store.Post, error) { return nil, nil }

func TestService_GenerateArchive(t *testing.T) {
	ts, _ := newsServer(t, `{"news": [{"title": "Big success", "source": "Wire"}]}`)

	t.Run("stored", func(t *testing.T) {
		var stored []store.Post
		archive := archiveFunc(func(_ context.Context, p store.Post) error {
			stored = append(stored, p)
			return nil
		})

		post, err := newTestService(ts, writerMock("Text.", nil), archive).
			Generate(context.Background(), Request{Topic: "success"})
		require.NoError(t, err)
		assert.Equal(t, []store.Post{post}, stored)
		assert.Equal(t, store.Positive, post.Emotion)
	})

	t.Run("archive failure doesn't fail request", func(t *testing.T) {
		archive := archiveFunc(func(context.Context, store.Post) error { return errors.New("disk full") })

		post, err := newTestService(ts, writerMock("Text.", nil), archive).
			Generate(context.Background(), Request{Topic: "success"})
		require.NoError(t, err)
		assert.Equal(t, "Text.", post.Blog)
	})
}
