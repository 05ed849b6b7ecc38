package parser

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Markup is removed;
// soft and hard line breaks stay line breaks, and top-level blocks are
// separated by a blank line.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	out := &Document{Title: baseTitle(filename)}
	titled := false

	var buf strings.Builder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 && !titled {
			var title strings.Builder
			writeInline(&title, h, src)
			if t := strings.TrimSpace(title.String()); t != "" {
				out.Title = t
				titled = true
			}
		}

		var block strings.Builder
		writeBlock(&block, n, src)
		if block.Len() == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(block.String())
	}

	out.Text = strings.TrimRight(buf.String(), "\n")
	return out, nil
}

// writeBlock writes the text of a block node, ending every line with "\n".
func writeBlock(buf *strings.Builder, n ast.Node, src []byte) {
	switch n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return
	case *ast.HTMLBlock, *ast.ThematicBreak:
		return
	}

	if first := n.FirstChild(); first != nil && first.Type() == ast.TypeInline {
		writeInline(buf, n, src)
		buf.WriteByte('\n')
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeBlock(buf, c, src)
	}
}

// writeInline writes the text of the inline children of n.
func writeInline(buf *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.AutoLink:
			buf.Write(t.Label(src))
		case *ast.RawHTML:
		default:
			writeInline(buf, c, src)
		}
	}
}
