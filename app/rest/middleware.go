package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Semior001/newsblog/pkg/logx"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// RequestIDHeader is a header with the request id.
const RequestIDHeader = "X-Request-ID"

// RequestID is a middleware that adds request id to the context and response headers.
// The id of the incoming request is reused, if provided.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logx.ContextWithRequestID(r.Context(), id)))
	})
}

// Recover is a middleware that recovers from panics.
func Recover(lg *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					lg.ErrorCtx(r.Context(), "panic recovered", slog.Any("panic", rec))
					renderJSON(w, http.StatusInternalServerError, errResponse{Error: "internal error"})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Logger is a middleware that logs all requests
func Logger(lg *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rw, r)

			lg.InfoCtx(r.Context(), "request processed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote", r.RemoteAddr),
				slog.Int("status", rw.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Timeout sets the timeout for the request context.
// Zero duration leaves the context as is.
func Timeout(dur time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if dur <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), dur)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
