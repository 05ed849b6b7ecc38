package analyzer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dgallion1/linetag/internal/lines"
	"github.com/dgallion1/linetag/internal/pos"
	"github.com/dgallion1/linetag/internal/tagger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyze_RuleTagger(t *testing.T) {
	svc := New(tagger.NewRuleTagger(nil), testLogger())

	got, err := svc.Analyze(context.Background(), "Hello, world!\n\n  The cat sleeps 10 hours.")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(got), got)
	}

	want0 := lines.Line{
		{Text: "Hello", Offset: 0, Category: pos.INTJ},
		{Text: "world", Offset: 7, Category: pos.NOUN},
	}
	if len(got[0]) != len(want0) || got[0][0] != want0[0] || got[0][1] != want0[1] {
		t.Errorf("line 0 = %v, want %v", got[0], want0)
	}
	if len(got[1]) != 0 {
		t.Errorf("line 1 should be empty, got %v", got[1])
	}

	texts := []string{}
	for _, e := range got[2] {
		texts = append(texts, e.Text)
	}
	if len(got[2]) != 4 || got[2][0].Text != "The" || got[2][0].Offset != 0 {
		t.Fatalf("line 2 = %v (%v)", got[2], texts)
	}
	// The indentation belongs to the newline run, so the line starts at "The".
	if last := got[2][len(got[2])-1]; last.Text != "hours" || last.Offset != 18 {
		t.Errorf("last entry = %+v, want hours at 18", last)
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	got, err := New(tagger.NewRuleTagger(nil), testLogger()).Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("expected [[]], got %v", got)
	}
}

func TestAnalyze_TaggerError(t *testing.T) {
	boom := errors.New("model unavailable")
	svc := New(tagger.Func(func(context.Context, string) ([]pos.Token, error) {
		return nil, boom
	}), testLogger())

	_, err := svc.Analyze(context.Background(), "text")
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped tagger error, got %v", err)
	}
}

func TestAnalyze_ContractViolation(t *testing.T) {
	svc := New(tagger.Func(func(context.Context, string) ([]pos.Token, error) {
		return []pos.Token{{Text: "a\nb", Offset: 0, Category: pos.NOUN}}, nil
	}), testLogger())

	got, err := svc.Analyze(context.Background(), "a\nb")
	if !errors.Is(err, lines.ErrContractViolation) {
		t.Fatalf("expected ErrContractViolation, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no result, got %v", got)
	}
}
