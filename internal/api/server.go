package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/linetag/internal/config"
	"github.com/dgallion1/linetag/internal/pipeline"
	"github.com/dgallion1/linetag/internal/tagger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for linetag.
type Server struct {
	router       chi.Router
	analyzer     pipeline.Analyzer
	orchestrator *pipeline.Orchestrator
	stats        *tagger.Stats
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil when
// the tagger backend does not record latencies.
func NewServer(analyzer pipeline.Analyzer, orch *pipeline.Orchestrator, stats *tagger.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		analyzer:     analyzer,
		orchestrator: orch,
		stats:        stats,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/analyze", s.handleAnalyze)
		r.Post("/get-stress", s.handleAnalyze)

		r.Post("/documents", s.handleUpload)
		r.Get("/documents/{jobID}", s.handleDocumentStatus)

		r.Get("/stats/tagger", s.handleTaggerStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
