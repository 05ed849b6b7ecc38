package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Block elements and <br> end a line;
// whitespace inside running text collapses to single spaces except in <pre>.
type HTMLParser struct{}

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true, "dl": true,
	"dt": true, "dd": true, "blockquote": true, "section": true,
	"article": true, "aside": true, "header": true, "footer": true,
	"main": true, "nav": true, "table": true, "tr": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"figure": true, "figcaption": true, "hr": true, "form": true,
}

var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"head": true, "svg": true,
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	out := &Document{Title: baseTitle(filename)}
	if title := findTitle(doc); title != "" {
		out.Title = title
	}

	w := &lineWriter{}
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, pre bool) {
		switch n.Type {
		case html.TextNode:
			w.text(n.Data, pre)
			return
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
			switch {
			case n.Data == "br":
				w.breakLine()
				return
			case n.Data == "pre":
				pre = true
			}
			if blockElements[n.Data] {
				w.endLine()
				defer w.endLine()
			} else if n.Data == "td" || n.Data == "th" {
				w.space()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, pre)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body, false)
	} else {
		walk(doc, false)
	}
	w.endLine()

	out.Text = strings.TrimRight(w.buf.String(), "\n")
	return out, nil
}

// lineWriter accumulates text into lines.
type lineWriter struct {
	buf  strings.Builder
	line strings.Builder
}

func (w *lineWriter) text(s string, pre bool) {
	if pre {
		parts := strings.Split(s, "\n")
		for i, part := range parts {
			if i > 0 {
				w.breakLine()
			}
			w.line.WriteString(part)
		}
		return
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			w.space()
		}
		return
	}
	if startsWithSpace(s) {
		w.space()
	}
	w.line.WriteString(strings.Join(fields, " "))
	if endsWithSpace(s) {
		w.space()
	}
}

func (w *lineWriter) space() {
	if w.line.Len() == 0 {
		return
	}
	if s := w.line.String(); !strings.HasSuffix(s, " ") {
		w.line.WriteByte(' ')
	}
}

// endLine finishes the current line if it holds any text.
func (w *lineWriter) endLine() {
	line := w.line.String()
	w.line.Reset()
	if strings.TrimSpace(line) == "" {
		return
	}
	w.buf.WriteString(strings.TrimRight(line, " \t"))
	w.buf.WriteByte('\n')
}

// breakLine finishes the current line even when it is empty.
func (w *lineWriter) breakLine() {
	w.buf.WriteString(strings.TrimRight(w.line.String(), " \t"))
	w.buf.WriteByte('\n')
	w.line.Reset()
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\r\n\f") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\r\n\f") != s
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
