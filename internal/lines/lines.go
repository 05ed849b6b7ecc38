package lines

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/linetag/internal/pos"
)

// ErrContractViolation means the tagger produced tokens that break the
// line structure of the text: a token without a known category, a
// non-space token containing a newline, or a newline-bearing space token
// holding non-whitespace.
var ErrContractViolation = errors.New("tagger contract violation")

// Entry is a retained token. Offset is relative to the start of its line.
type Entry struct {
	Text     string
	Offset   int
	Category pos.Category
}

// MarshalJSON encodes the entry as a [text, offset, category] triple.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{e.Text, e.Offset, e.Category})
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode entry: %w", err)
	}
	if err := json.Unmarshal(raw[0], &e.Text); err != nil {
		return fmt.Errorf("decode entry text: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Offset); err != nil {
		return fmt.Errorf("decode entry offset: %w", err)
	}
	return json.Unmarshal(raw[2], &e.Category)
}

// Line is one logical line of content tokens.
type Line []Entry

// MarshalJSON encodes an empty line as [] rather than null.
func (l Line) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Entry(l))
}

// Reconstruct groups tokens into lines. Every newline inside a SPACE token
// ends one line, so the result always holds one more line than there are
// newlines. SPACE, PUNCT, NUM and SYM tokens are dropped and offsets are
// rebased to the start of each line.
//
// On a contract violation Reconstruct returns nil and an error wrapping
// ErrContractViolation.
func Reconstruct(tokens []pos.Token) ([]Line, error) {
	var out []Line
	var current Line
	lineStart := 0

	for i, tok := range tokens {
		if !tok.Category.Valid() {
			return nil, fmt.Errorf("%w: token %d (%q at %d) has unknown category %d",
				ErrContractViolation, i, tok.Text, tok.Offset, uint8(tok.Category))
		}
		newlines := strings.Count(tok.Text, "\n")

		if tok.Category == pos.SPACE && newlines > 0 {
			if !isWhitespace(tok.Text) {
				return nil, fmt.Errorf("%w: token %d (%q at %d): newline run holds non-whitespace",
					ErrContractViolation, i, tok.Text, tok.Offset)
			}
			lineStart = tok.Offset + utf8.RuneCountInString(tok.Text)
			out = append(out, current)
			current = nil
			for range newlines - 1 {
				out = append(out, nil)
			}
			continue
		}

		if newlines != 0 {
			return nil, fmt.Errorf("%w: token %d (%q at %d, %s) contains a newline",
				ErrContractViolation, i, tok.Text, tok.Offset, tok.Category)
		}
		if tok.Category.Dropped() {
			continue
		}
		current = append(current, Entry{
			Text:     tok.Text,
			Offset:   tok.Offset - lineStart,
			Category: tok.Category,
		})
	}

	return append(out, current), nil
}

func isWhitespace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
