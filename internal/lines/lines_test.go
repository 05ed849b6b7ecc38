package lines

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/linetag/internal/pos"
)

func tok(text string, offset int, c pos.Category) pos.Token {
	return pos.Token{Text: text, Offset: offset, Category: c}
}

func TestReconstruct_EmptyInput(t *testing.T) {
	got, err := Reconstruct(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 line, got %d", len(got))
	}
	if len(got[0]) != 0 {
		t.Errorf("expected empty line, got %v", got[0])
	}
}

func TestReconstruct_SingleLine(t *testing.T) {
	tokens := []pos.Token{
		tok("Hello", 0, pos.INTJ),
		tok(",", 5, pos.PUNCT),
		tok(" ", 6, pos.SPACE),
		tok("world", 7, pos.NOUN),
	}
	got, err := Reconstruct(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Line{{
		{Text: "Hello", Offset: 0, Category: pos.INTJ},
		{Text: "world", Offset: 7, Category: pos.NOUN},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reconstruct = %v, want %v", got, want)
	}
}

func TestReconstruct_MultiNewline(t *testing.T) {
	tokens := []pos.Token{
		tok("A", 0, pos.NOUN),
		tok("\n\n", 1, pos.SPACE),
		tok("B", 3, pos.NOUN),
	}
	got, err := Reconstruct(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(got), got)
	}
	if !reflect.DeepEqual(got[0], Line{{Text: "A", Offset: 0, Category: pos.NOUN}}) {
		t.Errorf("line 0 = %v", got[0])
	}
	if len(got[1]) != 0 {
		t.Errorf("line 1 should be empty, got %v", got[1])
	}
	if !reflect.DeepEqual(got[2], Line{{Text: "B", Offset: 0, Category: pos.NOUN}}) {
		t.Errorf("line 2 = %v", got[2])
	}
}

func TestReconstruct_IndentedLineOffsets(t *testing.T) {
	// "go home\n  now run"
	tokens := []pos.Token{
		tok("go", 0, pos.VERB),
		tok(" ", 2, pos.SPACE),
		tok("home", 3, pos.ADV),
		tok("\n  ", 7, pos.SPACE),
		tok("now", 10, pos.ADV),
		tok(" ", 13, pos.SPACE),
		tok("run", 14, pos.VERB),
	}
	got, err := Reconstruct(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Line{
		{{Text: "go", Offset: 0, Category: pos.VERB}, {Text: "home", Offset: 3, Category: pos.ADV}},
		{{Text: "now", Offset: 0, Category: pos.ADV}, {Text: "run", Offset: 4, Category: pos.VERB}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reconstruct = %v, want %v", got, want)
	}
}

func TestReconstruct_SplitNewlineTokens(t *testing.T) {
	// Separate newline tokens each flush the line on their own.
	tokens := []pos.Token{
		tok("A", 0, pos.NOUN),
		tok("\n", 1, pos.SPACE),
		tok("\n", 2, pos.SPACE),
		tok("B", 3, pos.NOUN),
	}
	got, err := Reconstruct(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	if len(got[1]) != 0 || got[2][0].Offset != 0 {
		t.Errorf("unexpected lines %v", got)
	}
}

func TestReconstruct_TrailingNewline(t *testing.T) {
	got, err := Reconstruct([]pos.Token{tok("A", 0, pos.NOUN), tok("\n", 1, pos.SPACE)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || len(got[1]) != 0 {
		t.Errorf("expected a trailing empty line, got %v", got)
	}
}

func TestReconstruct_DropsNonContent(t *testing.T) {
	tokens := []pos.Token{
		tok("$", 0, pos.SYM),
		tok("5", 1, pos.NUM),
		tok("  ", 2, pos.SPACE),
		tok("!", 4, pos.PUNCT),
		tok("ok", 5, pos.INTJ),
	}
	got, err := Reconstruct(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Line{{{Text: "ok", Offset: 5, Category: pos.INTJ}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reconstruct = %v, want %v", got, want)
	}
}

func TestReconstruct_RuneOffsets(t *testing.T) {
	// "café\nvoilà là" with rune offsets.
	tokens := []pos.Token{
		tok("café", 0, pos.NOUN),
		tok("\n", 4, pos.SPACE),
		tok("voilà", 5, pos.INTJ),
		tok(" ", 10, pos.SPACE),
		tok("là", 11, pos.ADV),
	}
	got, err := Reconstruct(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[1][0].Offset != 0 || got[1][1].Offset != 6 {
		t.Errorf("unexpected offsets in %v", got[1])
	}
}

func TestReconstruct_ContractViolations(t *testing.T) {
	tests := []struct {
		name   string
		tokens []pos.Token
	}{
		{"newline in noun", []pos.Token{tok("A", 0, pos.NOUN), tok("B\nC", 1, pos.NOUN)}},
		{"newline in punct", []pos.Token{tok(".\n", 0, pos.PUNCT)}},
		{"space run with text", []pos.Token{tok(" x\n", 0, pos.SPACE)}},
		{"missing category", []pos.Token{tok("A", 0, pos.NOUN), tok(" ", 1, pos.SPACE), {Text: "word", Offset: 2}}},
		{"category out of range", []pos.Token{tok("word", 0, pos.Category(200))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reconstruct(tt.tokens)
			if !errors.Is(err, ErrContractViolation) {
				t.Fatalf("expected ErrContractViolation, got %v", err)
			}
			if got != nil {
				t.Errorf("expected no output on violation, got %v", got)
			}
		})
	}
}

func TestReconstruct_Laws(t *testing.T) {
	// "The cat, 3 dogs.\n\n  Run!\n\tfast" tokenized by hand.
	tokens := []pos.Token{
		tok("The", 0, pos.DET),
		tok(" ", 3, pos.SPACE),
		tok("cat", 4, pos.NOUN),
		tok(",", 7, pos.PUNCT),
		tok(" ", 8, pos.SPACE),
		tok("3", 9, pos.NUM),
		tok(" ", 10, pos.SPACE),
		tok("dogs", 11, pos.NOUN),
		tok(".", 15, pos.PUNCT),
		tok("\n\n  ", 16, pos.SPACE),
		tok("Run", 20, pos.VERB),
		tok("!", 23, pos.PUNCT),
		tok("\n\t", 24, pos.SPACE),
		tok("fast", 26, pos.ADV),
	}
	got, err := Reconstruct(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newlines := 0
	var wantText, gotText strings.Builder
	for _, tk := range tokens {
		if tk.Category == pos.SPACE {
			newlines += strings.Count(tk.Text, "\n")
		}
		if !tk.Category.Dropped() {
			wantText.WriteString(tk.Text)
		}
	}
	if len(got) != newlines+1 {
		t.Errorf("line count law: got %d lines, want %d", len(got), newlines+1)
	}

	starts := []int{0, 20, 20, 26}
	for i, line := range got {
		prev := -1
		for _, e := range line {
			gotText.WriteString(e.Text)
			if e.Category.Dropped() {
				t.Errorf("line %d retained %v token %q", i, e.Category, e.Text)
			}
			if e.Offset < 0 || e.Offset <= prev {
				t.Errorf("line %d: offsets not increasing at %q (%d)", i, e.Text, e.Offset)
			}
			prev = e.Offset
		}
	}
	if gotText.String() != wantText.String() {
		t.Errorf("content preservation: got %q, want %q", gotText.String(), wantText.String())
	}

	// Relative offset: absolute - line start.
	for i, line := range got {
		for _, e := range line {
			found := false
			for _, tk := range tokens {
				if tk.Text == e.Text && tk.Offset-starts[i] == e.Offset {
					found = true
				}
			}
			if !found {
				t.Errorf("line %d: %q at %d does not match any absolute offset", i, e.Text, e.Offset)
			}
		}
	}
}

func TestLine_JSON(t *testing.T) {
	result := []Line{
		{{Text: "A", Offset: 0, Category: pos.NOUN}},
		nil,
		{{Text: "B", Offset: 2, Category: pos.VERB}},
	}
	b, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[[["A",0,"NOUN"]],[],[["B",2,"VERB"]]]`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}

	var decoded []Line
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[2][0] != result[2][0] {
		t.Errorf("decoded %v, want %v", decoded[2][0], result[2][0])
	}
}
