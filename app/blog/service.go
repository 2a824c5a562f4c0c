// Package blog contains services to write blog posts about recent news.
package blog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Semior001/newsblog/app/store"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// ErrNoTopic is returned when the request has no topic.
var ErrNoTopic = errors.New("topic is required")

// NewsSearcher searches recent news about the topic.
type NewsSearcher interface {
	Search(ctx context.Context, topic string) ([]store.Article, error)
}

// Writer completes the prompt with a post.
type Writer interface {
	Write(ctx context.Context, prompt string) (string, error)
}

// Service is a main application service.
type Service struct {
	log     *slog.Logger
	news    NewsSearcher
	writer  Writer
	archive store.Interface
	now     func() time.Time
}

// NewService creates new service.
// archive may be nil, then posts are not stored.
func NewService(lg *slog.Logger, news NewsSearcher, writer Writer, archive store.Interface) *Service {
	return &Service{
		log:     lg,
		news:    news,
		writer:  writer,
		archive: archive,
		now:     time.Now,
	}
}

// Request describes a post to generate.
type Request struct {
	Topic       string
	Preferences *store.Preferences // nil means defaults
}

// Generate searches news about the topic and writes a post about them.
// Returned errors are always of type *Error.
func (s *Service) Generate(ctx context.Context, req Request) (store.Post, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return store.Post{}, &Error{Kind: KindValidation, Err: ErrNoTopic}
	}

	var prefs store.Preferences
	if req.Preferences != nil {
		prefs = *req.Preferences
	}
	prefs = prefs.WithDefaults()

	articles, err := s.news.Search(ctx, topic)
	if err != nil {
		return store.Post{}, errorf(KindUpstreamNews, "search news: %w", err)
	}

	emotion := DetectEmotion(articlesText(articles))
	humor := EffectiveHumor(prefs.HumorLevel, emotion)

	s.log.InfoCtx(ctx, "writing post",
		slog.String("topic", topic),
		slog.Int("articles", len(articles)),
		slog.String("emotion", string(emotion)),
		slog.String("requested_humor", prefs.HumorLevel),
		slog.String("humor", humor))

	prompt, err := BuildPrompt(PromptParams{
		Topic:       topic,
		Articles:    articles,
		Preferences: prefs,
		Emotion:     emotion,
		Humor:       humor,
	})
	if err != nil {
		return store.Post{}, errorf(KindUpstreamGeneration, "build prompt: %w", err)
	}

	s.log.DebugCtx(ctx, "prompt built", slog.String("prompt", prompt))

	text, err := s.writer.Write(ctx, prompt)
	if err != nil {
		return store.Post{}, errorf(KindUpstreamGeneration, "write post: %w", err)
	}

	post := store.Post{
		ID:            uuid.New().String(),
		Topic:         topic,
		Requested:     prefs,
		Emotion:       emotion,
		Humor:         humor,
		ArticlesCount: len(articles),
		Blog:          text,
		CreatedAt:     s.now().UTC(),
	}

	if s.archive != nil {
		if err = s.archive.Put(ctx, post); err != nil {
			s.log.WarnCtx(ctx, "failed to archive post", slog.String("id", post.ID), slog.Any("err", err))
		}
	}

	return post, nil
}
