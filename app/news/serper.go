// Package news provides clients to retrieve recent news about a topic.
package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Semior001/newsblog/app/store"
	"github.com/Semior001/newsblog/pkg/logx"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

// Default parameters of the Serper API.
const (
	DefaultSerperURL = "https://google.serper.dev"
	DefaultRegion    = "in"
)

// Serper is a client to search news via google.serper.dev.
type Serper struct {
	log     *slog.Logger
	cl      *requester.Requester
	baseURL string
	region  string
	cache   cache.Cache[string, []store.Article]
}

// SerperParams defines parameters for Serper client.
type SerperParams struct {
	Logger   *slog.Logger
	Client   http.Client
	APIKey   string
	BaseURL  string        // DefaultSerperURL if empty
	Region   string        // DefaultRegion if empty
	CacheTTL time.Duration // zero disables caching
}

// NewSerper makes new Serper client.
func NewSerper(p SerperParams) *Serper {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}
	if p.BaseURL == "" {
		p.BaseURL = DefaultSerperURL
	}
	if p.Region == "" {
		p.Region = DefaultRegion
	}

	s := &Serper{
		log: p.Logger,
		cl: requester.New(p.Client,
			middleware.Header("X-API-KEY", p.APIKey),
			middleware.JSON,
			logx.LoggingRoundTripper(p.Logger, logx.RoundTripperOpts{
				Level:         slog.LevelDebug,
				SecretHeaders: []string{"X-Api-Key"},
			}),
		),
		baseURL: strings.TrimRight(p.BaseURL, "/"),
		region:  p.Region,
	}

	if p.CacheTTL > 0 {
		s.cache = cache.NewCache[string, []store.Article]().
			WithLRU().
			WithMaxKeys(100).
			WithTTL(p.CacheTTL)
	}

	return s
}

// CacheStat returns stats of the search results cache.
// Returns zero stats if caching is disabled.
func (s *Serper) CacheStat() cache.Stats {
	if s.cache == nil {
		return cache.Stats{}
	}
	return s.cache.Stat()
}

type searchRequest struct {
	Query  string `json:"q"`
	Region string `json:"gl"`
}

type searchResponse struct {
	News []store.Article `json:"news"`
}

// Search returns recent news about the topic.
// If the provider's response lacks news, nil is returned without an error.
func (s *Serper) Search(ctx context.Context, topic string) ([]store.Article, error) {
	if s.cache != nil {
		if articles, ok := s.cache.Get(topic); ok {
			s.log.DebugCtx(ctx, "news found in cache", slog.String("topic", topic))
			return articles, nil
		}
	}

	s.log.DebugCtx(ctx, "searching news", slog.String("topic", topic))

	bts, err := json.Marshal(searchRequest{Query: topic, Region: s.region})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/news", bytes.NewReader(bts))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	var sr searchResponse
	if err = json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	s.log.DebugCtx(ctx, "news received",
		slog.String("topic", topic),
		slog.Int("articles", len(sr.News)))

	if s.cache != nil {
		s.cache.Set(topic, sr.News, 0)
	}

	return sr.News, nil
}
