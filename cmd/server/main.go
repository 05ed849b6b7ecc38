package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/linetag/internal/analyzer"
	"github.com/dgallion1/linetag/internal/api"
	"github.com/dgallion1/linetag/internal/config"
	"github.com/dgallion1/linetag/internal/pipeline"
	"github.com/dgallion1/linetag/internal/pos"
	"github.com/dgallion1/linetag/internal/tagger"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the tagger backend.
	var (
		tg     tagger.Tagger
		stats  *tagger.Stats
		remote *tagger.HTTPTagger
	)
	switch cfg.TaggerBackend {
	case config.BackendHTTP:
		remote = tagger.NewHTTPTagger(cfg.TaggerURL, cfg.TaggerAPIKey, cfg.TaggerTimeout, cfg.TaggerMaxChars, log)
		tg, stats = remote, remote.Stats
	default:
		var overrides map[string]pos.Category
		if cfg.TaggerLexiconFile != "" {
			var err error
			overrides, err = tagger.LoadLexicon(cfg.TaggerLexiconFile)
			if err != nil {
				log.Error("failed to load lexicon", "path", cfg.TaggerLexiconFile, "error", err)
				os.Exit(1)
			}
			log.Info("loaded lexicon overrides", "path", cfg.TaggerLexiconFile, "words", len(overrides))
		}
		tg = tagger.NewRuleTagger(overrides)
	}

	svc := analyzer.New(tg, log)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, svc, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(svc, orch, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}

		orch.Stop()
		if remote != nil {
			remote.Close()
		}
	}()

	log.Info("starting linetag", "port", cfg.Port, "tagger", cfg.TaggerBackend)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}
