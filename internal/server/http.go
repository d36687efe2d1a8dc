package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Dependency is an upstream checked by /ping.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// NewHTTPServer wires the trivia API plus health, ping and metrics routes.
// triviaHandler can be nil when only the operational routes are needed.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps []Dependency, triviaHandler *trivia.HTTPHandler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg.CORS, logger, deps, triviaHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the routed, middleware-wrapped handler used by NewHTTPServer.
func NewHandler(cors config.CORS, logger zerolog.Logger, deps []Dependency, triviaHandler *trivia.HTTPHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		for _, dep := range deps {
			if err := dep.Ping(r.Context()); err != nil {
				logger.Error().Err(err).Str("dependency", dep.Name).Msg("dependency ping failed")
				httperrors.RespondError(w, http.StatusBadGateway)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if triviaHandler != nil {
		triviaHandler.Register(mux, "")
		// The frontend calls /api/*; both mounts stay registered.
		triviaHandler.Register(mux, "/api")
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	return withCORS(cors, withRequestLogging(logger, withMetrics(mux)))
}
