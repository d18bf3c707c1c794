// Package server serves the browser UI: a transcript form, a dialogue form
// and the JSON fragments they produce.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/spacesedan/notetaker/internal/sentiment"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	maxFormBytes        = 1 << 20
	defaultWriteTimeout = 60 * time.Second
	writeTimeoutMargin  = 10 * time.Second
)

type Server struct {
	analyzer     *sentiment.Analyzer
	healthy      *atomic.Bool
	templates    *template.Template
	addr         string
	writeTimeout time.Duration
}

// NewServer parses the embedded templates. healthy is updated by the
// classifier health monitor and reported on /healthz. classifierBudget is
// the worst-case fallback latency; responses get at least that long plus a
// margin to be written.
func NewServer(analyzer *sentiment.Analyzer, healthy *atomic.Bool, addr string, classifierBudget time.Duration) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		analyzer:     analyzer,
		healthy:      healthy,
		templates:    tmpl,
		addr:         addr,
		writeTimeout: max(defaultWriteTimeout, classifierBudget+writeTimeoutMargin),
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze/transcript", s.handleAnalyzeTranscript)
	mux.HandleFunc("POST /analyze/sentiment", s.handleAnalyzeSentiment)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return requestIDMiddleware(loggingMiddleware(mux))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Server] Listening", slog.String("addr", s.addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("[Server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
