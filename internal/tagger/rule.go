package tagger

import (
	"context"
	"strings"
	"unicode"

	"github.com/dgallion1/linetag/internal/pos"
)

// RuleTagger is an in-process tagger built from a closed-class lexicon and
// word-shape heuristics. It needs no model and is safe for concurrent use.
type RuleTagger struct {
	lexicon map[string]pos.Category
}

// NewRuleTagger creates a RuleTagger. Entries in overrides replace the
// built-in lexicon.
func NewRuleTagger(overrides map[string]pos.Category) *RuleTagger {
	lex := defaultLexicon()
	for w, c := range overrides {
		lex[strings.ToLower(w)] = c
	}
	return &RuleTagger{lexicon: lex}
}

// Tag splits text into whitespace runs, words, numbers, punctuation and
// symbols, and assigns each a category.
func (t *RuleTagger) Tag(ctx context.Context, text string) ([]pos.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runes := []rune(text)
	var tokens []pos.Token
	sentenceStart := true

	for i := 0; i < len(runes); {
		start := i
		r := runes[i]
		var c pos.Category

		switch {
		case unicode.IsSpace(r):
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			c = pos.SPACE
		case isWordRune(r):
			i = scanWord(runes, i)
			c = t.classify(runes[start:i], sentenceStart)
		case unicode.IsPunct(r):
			i++
			c = pos.PUNCT
		case unicode.IsSymbol(r):
			i++
			c = pos.SYM
		default:
			i++
			c = pos.X
		}

		tok := pos.Token{Text: string(runes[start:i]), Offset: start, Category: c}
		tokens = append(tokens, tok)

		switch c {
		case pos.SPACE:
			if strings.ContainsRune(tok.Text, '\n') {
				sentenceStart = true
			}
		case pos.PUNCT:
			if r == '.' || r == '!' || r == '?' {
				sentenceStart = true
			}
		default:
			sentenceStart = false
		}
	}

	return tokens, nil
}

func (t *RuleTagger) classify(word []rune, sentenceStart bool) pos.Category {
	if isNumeric(word) {
		return pos.NUM
	}

	lower := strings.ToLower(string(word))
	if c, ok := t.lexicon[lower]; ok {
		return c
	}
	// Possessives and clitics take the category of their stem.
	if i := strings.IndexAny(lower, "'’"); i > 0 {
		if c, ok := t.lexicon[lower[:i]]; ok {
			return c
		}
	}

	if strings.IndexFunc(lower, unicode.IsDigit) >= 0 {
		return pos.NOUN
	}
	if unicode.IsUpper(word[0]) {
		if !sentenceStart || (len(word) > 1 && isAllUpper(word)) {
			return pos.PROPN
		}
	}

	return bySuffix(lower)
}

var suffixRules = []struct {
	suffix string
	cat    pos.Category
}{
	{"ly", pos.ADV},
	{"ing", pos.VERB},
	{"ed", pos.VERB},
	{"ize", pos.VERB},
	{"ise", pos.VERB},
	{"ify", pos.VERB},
	{"ous", pos.ADJ},
	{"ful", pos.ADJ},
	{"able", pos.ADJ},
	{"ible", pos.ADJ},
	{"ive", pos.ADJ},
	{"less", pos.ADJ},
	{"ish", pos.ADJ},
	{"ical", pos.ADJ},
	{"ic", pos.ADJ},
}

func bySuffix(lower string) pos.Category {
	n := len([]rune(lower))
	for _, rule := range suffixRules {
		if n > len(rule.suffix)+2 && strings.HasSuffix(lower, rule.suffix) {
			return rule.cat
		}
	}
	return pos.NOUN
}

// scanWord returns the end of the word starting at i. Apostrophes and
// hyphens join letters; dots and commas join digits.
func scanWord(runes []rune, i int) int {
	for i < len(runes) {
		r := runes[i]
		if isWordRune(r) {
			i++
			continue
		}
		if i > 0 && i+1 < len(runes) {
			prev, next := runes[i-1], runes[i+1]
			switch r {
			case '\'', '’', '-':
				if unicode.IsLetter(prev) && unicode.IsLetter(next) {
					i++
					continue
				}
			case '.', ',':
				if unicode.IsDigit(prev) && unicode.IsDigit(next) {
					i++
					continue
				}
			}
		}
		break
	}
	return i
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r) || r == '_'
}

func isNumeric(word []rune) bool {
	if !unicode.IsNumber(word[0]) {
		return false
	}
	for _, r := range word {
		if !unicode.IsNumber(r) && r != '.' && r != ',' {
			return false
		}
	}
	return true
}

func isAllUpper(word []rune) bool {
	for _, r := range word {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
