package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/linetag/internal/parser"
)

// Worker processes a single document job.
type Worker struct {
	analyzer Analyzer
	opts     parser.Options
	log      *slog.Logger
}

func NewWorker(analyzer Analyzer, opts parser.Options, log *slog.Logger) *Worker {
	return &Worker{
		analyzer: analyzer,
		opts:     opts,
		log:      log,
	}
}

// Process parses the uploaded file and analyzes its text.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.opts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.Fail("parsing", err)
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", fmt.Errorf("parse: %w", err))
		return
	}
	if job.Title == "" {
		job.mu.Lock()
		job.Title = doc.Title
		job.mu.Unlock()
	}

	// Phase 2: Tag and regroup into lines.
	job.SetStatus(StatusTagging, "tagging")
	result, err := w.analyzer.Analyze(ctx, doc.Text)
	if err != nil {
		log.Error("analysis failed", "error", err)
		job.Fail("tagging", err)
		return
	}

	job.Complete(result)
	log.Info("document analyzed",
		"lines", len(result),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
