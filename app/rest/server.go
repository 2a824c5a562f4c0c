// Package rest provides HTTP API of the application.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Semior001/newsblog/app/blog"
	"github.com/Semior001/newsblog/app/store"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/gorilla/mux"
	"golang.org/x/exp/slog"
)

// Service generates blog posts.
type Service interface {
	Generate(ctx context.Context, req blog.Request) (store.Post, error)
}

// Server is an HTTP server of the application.
type Server struct {
	Addr           string
	Logger         *slog.Logger
	Service        Service
	Posts          store.Interface    // nil disables posts routes
	CacheStat      func() cache.Stats // nil disables stats route
	RequestTimeout time.Duration
	Version        string
}

// Run starts the server and shuts it down when context is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.Logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.InfoCtx(ctx, "starting http server", slog.String("addr", s.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return ctx.Err()
}

// Routes returns a multiplexer for the server handlers.
func (s *Server) Routes() http.Handler {
	rtr := mux.NewRouter()

	rtr.Use(
		RequestID,
		Recover(s.Logger),
		Logger(s.Logger),
	)

	rtr.HandleFunc("/ping", s.ping).Methods(http.MethodGet)

	rtr.Handle("/generate_blog", Timeout(s.RequestTimeout)(http.HandlerFunc(s.generate))).
		Methods(http.MethodPost)

	if s.Posts != nil {
		rtr.HandleFunc("/posts", s.listPosts).Methods(http.MethodGet)
		rtr.HandleFunc("/posts/{id}", s.getPost).Methods(http.MethodGet)
	}

	if s.CacheStat != nil {
		rtr.HandleFunc("/stats", s.stats).Methods(http.MethodGet)
	}

	return rtr
}

type generateRequest struct {
	Title     string             `json:"title"`
	UserInput *store.Preferences `json:"user_input"`
}

type generateResponse struct {
	ID   string `json:"id,omitempty"`
	Blog string `json:"blog"`
}

type errResponse struct {
	Error string         `json:"error"`
	Kind  blog.ErrorKind `json:"kind,omitempty"`
}

// missingFields is a fixed message for invalid requests.
const missingFields = "Missing fields"

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Logger.DebugCtx(r.Context(), "failed to decode request", slog.Any("err", err))
		renderJSON(w, http.StatusBadRequest, errResponse{Error: missingFields, Kind: blog.KindValidation})
		return
	}

	post, err := s.Service.Generate(r.Context(), blog.Request{Topic: req.Title, Preferences: req.UserInput})
	if err != nil {
		var berr *blog.Error
		if errors.As(err, &berr) && berr.Kind == blog.KindValidation {
			renderJSON(w, http.StatusBadRequest, errResponse{Error: missingFields, Kind: berr.Kind})
			return
		}

		s.Logger.WarnCtx(r.Context(), "failed to generate post", slog.Any("err", err))

		resp := errResponse{Error: err.Error()}
		if berr != nil {
			resp.Kind = berr.Kind
		}
		renderJSON(w, http.StatusInternalServerError, resp)
		return
	}

	resp := generateResponse{Blog: post.Blog}
	if s.Posts != nil {
		resp.ID = post.ID
	}
	renderJSON(w, http.StatusOK, resp)
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.Posts.List(r.Context(), store.ListRequest{Topic: r.URL.Query().Get("topic")})
	if err != nil {
		s.Logger.WarnCtx(r.Context(), "failed to list posts", slog.Any("err", err))
		renderJSON(w, http.StatusInternalServerError, errResponse{Error: err.Error()})
		return
	}

	if posts == nil {
		posts = []store.Post{}
	}

	renderJSON(w, http.StatusOK, posts)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.Posts.Get(r.Context(), mux.Vars(r)["id"])
	switch {
	case errors.Is(err, store.ErrNotFound):
		renderJSON(w, http.StatusNotFound, errResponse{Error: "post not found"})
		return
	case err != nil:
		s.Logger.WarnCtx(r.Context(), "failed to get post", slog.Any("err", err))
		renderJSON(w, http.StatusInternalServerError, errResponse{Error: err.Error()})
		return
	}

	renderJSON(w, http.StatusOK, post)
}

func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	st := s.CacheStat()
	renderJSON(w, http.StatusOK, map[string]int{
		"hits":    st.Hits,
		"misses":  st.Misses,
		"added":   st.Added,
		"evicted": st.Evicted,
	})
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("App-Version", s.Version)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
