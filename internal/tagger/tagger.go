package tagger

import (
	"context"

	"github.com/dgallion1/linetag/internal/pos"
)

// Tagger tags a text and returns its tokens in order. The tokens cover the
// whole input: whitespace, punctuation and symbols are tokens too. Offsets
// count runes, not bytes.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]pos.Token, error)
}

// Func adapts a plain function to the Tagger interface.
type Func func(ctx context.Context, text string) ([]pos.Token, error)

func (f Func) Tag(ctx context.Context, text string) ([]pos.Token, error) {
	return f(ctx, text)
}
