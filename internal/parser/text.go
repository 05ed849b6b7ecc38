package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// TextParser handles plain text files. The text is kept verbatim apart from
// a leading byte order mark.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("text is not valid UTF-8")
	}

	return &Document{
		Title: baseTitle(filename),
		Text:  strings.TrimPrefix(string(data), "\ufeff"),
	}, nil
}
