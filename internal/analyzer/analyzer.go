package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/linetag/internal/lines"
	"github.com/dgallion1/linetag/internal/tagger"
)

// Service runs text through a Tagger and the line reconstructor.
type Service struct {
	tagger tagger.Tagger
	log    *slog.Logger
}

func New(t tagger.Tagger, log *slog.Logger) *Service {
	return &Service{tagger: t, log: log}
}

// Analyze returns the content tokens of text grouped by line. Empty text
// yields a single empty line.
func (s *Service) Analyze(ctx context.Context, text string) ([]lines.Line, error) {
	start := time.Now()

	tokens, err := s.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}

	result, err := lines.Reconstruct(tokens)
	if err != nil {
		s.log.Error("tagger output rejected", "tokens", len(tokens), "error", err)
		return nil, fmt.Errorf("reconstruct: %w", err)
	}

	s.log.Debug("analyzed text",
		"runes", len([]rune(text)),
		"tokens", len(tokens),
		"lines", len(result),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
