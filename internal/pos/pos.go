package pos

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a tagger reports a tag outside the
// Universal POS set.
var ErrUnknownCategory = errors.New("unknown pos category")

// Category is a coarse part-of-speech tag from the Universal POS tag set.
type Category uint8

const (
	Unknown Category = iota
	ADJ
	ADP
	ADV
	AUX
	CONJ
	CCONJ
	DET
	INTJ
	NOUN
	NUM
	PART
	PRON
	PROPN
	PUNCT
	SCONJ
	SYM
	VERB
	X
	SPACE
)

var categoryNames = [...]string{
	Unknown: "",
	ADJ:     "ADJ",
	ADP:     "ADP",
	ADV:     "ADV",
	AUX:     "AUX",
	CONJ:    "CONJ",
	CCONJ:   "CCONJ",
	DET:     "DET",
	INTJ:    "INTJ",
	NOUN:    "NOUN",
	NUM:     "NUM",
	PART:    "PART",
	PRON:    "PRON",
	PROPN:   "PROPN",
	PUNCT:   "PUNCT",
	SCONJ:   "SCONJ",
	SYM:     "SYM",
	VERB:    "VERB",
	X:       "X",
	SPACE:   "SPACE",
}

var byName = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for c, name := range categoryNames {
		if name != "" {
			m[name] = Category(c)
		}
	}
	return m
}()

// ParseCategory converts a tag string into a Category. Matching is
// case-insensitive; anything outside the tag set is an error.
func ParseCategory(s string) (Category, error) {
	if c, ok := byName[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) String() string {
	if int(c) < len(categoryNames) && categoryNames[c] != "" {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Valid reports whether c is a member of the tag set.
func (c Category) Valid() bool {
	return c != Unknown && int(c) < len(categoryNames)
}

// Dropped reports whether tokens of this category are excluded from
// reconstructed lines.
func (c Category) Dropped() bool {
	switch c {
	case SPACE, PUNCT, NUM, SYM:
		return true
	}
	return false
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Token is one tagged unit of text. Offset is the index, in runes, of the
// token's first character within the tagged text.
type Token struct {
	Text     string   `json:"text"`
	Offset   int      `json:"idx"`
	Category Category `json:"pos"`
}
