// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Semior001/newsblog/app/blog"
	"github.com/Semior001/newsblog/app/news"
	"github.com/Semior001/newsblog/app/rest"
	"github.com/Semior001/newsblog/app/store"
	"github.com/Semior001/newsblog/pkg/logx"
	"github.com/go-pkgz/requester"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Server is a command to run the HTTP server.
type Server struct {
	Addr           string        `long:"addr" env:"ADDR" default:":8080" description:"address to listen on"`
	RequestTimeout time.Duration `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"6m" description:"timeout for generate requests"`

	Serper struct {
		APIKey   string        `long:"api-key" env:"API_KEY" description:"serper API key"`
		BaseURL  string        `long:"base-url" env:"BASE_URL" default:"https://google.serper.dev" description:"serper API URL"`
		Region   string        `long:"region" env:"REGION" default:"in" description:"region of the news"`
		Timeout  time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"timeout for serper calls"`
		CacheTTL time.Duration `long:"cache-ttl" env:"CACHE_TTL" default:"0s" description:"ttl of cached news, 0 disables cache"`
	} `group:"serper" namespace:"serper" env-namespace:"SERPER"`

	Groq struct {
		APIKey    string        `long:"api-key" env:"API_KEY" description:"groq API key"`
		BaseURL   string        `long:"base-url" env:"BASE_URL" default:"https://api.groq.com/openai/v1" description:"groq API URL"`
		Model     string        `long:"model" env:"MODEL" default:"llama-3.3-70b-versatile" description:"model to write posts with"`
		MaxTokens int           `long:"max-tokens" env:"MAX_TOKENS" default:"0" description:"max tokens in response, 0 for provider's default"`
		Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"5m" description:"timeout for groq calls"`
	} `group:"groq" namespace:"groq" env-namespace:"GROQ"`

	StorePath string `long:"store-path" env:"STORE_PATH" description:"parent dir for bolt files, empty disables posts archive"`

	Version string `no-flag:"true"`
}

// Execute runs the command.
func (s Server) Execute(_ []string) error {
	lg := slog.Default()

	if s.Serper.APIKey == "" || s.Groq.APIKey == "" {
		return errors.New("serper and groq API keys are required")
	}

	serper := news.NewSerper(news.SerperParams{
		Logger:   lg.With(slog.String("prefix", "serper")),
		Client:   http.Client{Timeout: s.Serper.Timeout},
		APIKey:   s.Serper.APIKey,
		BaseURL:  s.Serper.BaseURL,
		Region:   s.Serper.Region,
		CacheTTL: s.Serper.CacheTTL,
	})

	groqLog := lg.With(slog.String("prefix", "groq"))
	groq := blog.NewGroq(blog.GroqParams{
		Logger: groqLog,
		Client: requester.New(http.Client{Timeout: s.Groq.Timeout},
			logx.LoggingRoundTripper(groqLog, logx.RoundTripperOpts{
				Level:         slog.LevelDebug,
				SecretHeaders: []string{"Authorization"},
			}),
		).Client(),
		APIKey:    s.Groq.APIKey,
		BaseURL:   s.Groq.BaseURL,
		Model:     s.Groq.Model,
		MaxTokens: s.Groq.MaxTokens,
	})

	var posts store.Interface
	if s.StorePath != "" {
		b, err := store.NewBolt(s.StorePath)
		if err != nil {
			return fmt.Errorf("make store: %w", err)
		}

		defer func() {
			if err := b.Close(); err != nil {
				lg.Error("close bolt store", slog.Any("err", err))
			}
		}()

		posts = b
	}

	srv := &rest.Server{
		Addr:           s.Addr,
		Logger:         lg.With(slog.String("prefix", "rest")),
		Service:        blog.NewService(lg.With(slog.String("prefix", "blog")), serper, groq, posts),
		Posts:          posts,
		CacheStat:      serper.CacheStat,
		RequestTimeout: s.RequestTimeout,
		Version:        s.Version,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case sig := <-sig:
			slog.Warn("caught signal, stopping", slog.String("signal", sig.String()))
			stop()
			return ctx.Err()
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	ewg.Go(func() error {
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("run server: %w", err)
		}
		lg.Warn("server stopped")
		return nil
	})

	if err := ewg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
