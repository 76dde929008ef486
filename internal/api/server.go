package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/meetscribe/scribe-engine/internal/ai"
	"github.com/meetscribe/scribe-engine/internal/auth"
	"github.com/meetscribe/scribe-engine/internal/config"
	"github.com/meetscribe/scribe-engine/internal/media"
	"github.com/meetscribe/scribe-engine/internal/metrics"
	"github.com/meetscribe/scribe-engine/internal/summarize"
)

// Deps are the constructed components the HTTP layer serves.
type Deps struct {
	Users     *auth.IdentityStore
	Sessions  *auth.SessionStore
	Media     *media.Store
	Extractor *media.Extractor
	AI        ai.Client
	Engine    *summarize.Engine
}

type Server struct {
	http *http.Server
	log  zerolog.Logger
}

func NewServer(cfg *config.Config, deps Deps, log zerolog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      NewRouter(cfg, deps, log),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log: log,
	}
}

// NewRouter assembles the middleware chain and all endpoints.
func NewRouter(cfg *config.Config, deps Deps, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(RequestID)
	r.Use(Recoverer)
	r.Use(Logger(log))
	r.Use(CORSWithOrigins(cfg.AllowedOrigins))
	r.Use(metrics.InstrumentHandler)

	// Unauthenticated endpoints
	health := NewHealthHandler(deps.AI)
	r.Get("/api/health", health.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	authH := NewAuthHandler(deps.Users, deps.Sessions, cfg.SessionTTL, log)
	authH.Routes(r)

	// Session-protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(SessionAuth(deps.Sessions, deps.Users))
		r.Get("/api/me", authH.Me)

		NewUploadHandler(deps.Media, deps.Extractor, deps.AI, deps.Engine,
			cfg.Language, cfg.MaxUploadBytes, log).Routes(r)
		NewAnalyzeHandler(deps.Engine, log).Routes(r)
	})

	return r
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("http server starting")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("http server shutting down")
	return s.http.Shutdown(ctx)
}
