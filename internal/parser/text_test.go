package parser

import (
	"strings"
	"testing"
)

func TestTextParser_KeepsLinesVerbatim(t *testing.T) {
	input := "First line.\n  Indented second line.\n\n\nAfter gap."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if doc.Text != input {
		t.Errorf("expected text %q, got %q", input, doc.Text)
	}
}

func TestTextParser_StripsBOM(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("\ufeffHello"), "bom.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", doc.Text)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" || doc.Text != "" {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestTextParser_RejectsInvalidUTF8(t *testing.T) {
	p := &TextParser{}
	if _, err := p.Parse(strings.NewReader("bad \xff bytes"), "bad.txt"); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}

func TestCSVParser_OneLinePerRecord(t *testing.T) {
	input := "name,role\nAda,\"writes\n poems\"\nAlan,breaks codes\n"
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(input), "people.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "name, role\nAda, writes poems\nAlan, breaks codes"
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
	if doc.Title != "people" {
		t.Errorf("expected title %q, got %q", "people", doc.Title)
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"a.txt", false},
		{"a.MD", false},
		{"a.markdown", false},
		{"a.html", false},
		{"a.csv", false},
		{"a.pdf", false},
		{"a.docx", false},
		{"a.exe", true},
		{"noext", true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			p, err := ForFile(tt.filename, Options{})
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.filename)
				}
				return
			}
			if err != nil || p == nil {
				t.Errorf("ForFile(%q) = %v, %v", tt.filename, p, err)
			}
			if !IsSupportedExtension(tt.filename) {
				t.Errorf("IsSupportedExtension(%q) = false", tt.filename)
			}
		})
	}
}

func TestForFile_PDFOptions(t *testing.T) {
	p, err := ForFile("doc.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pdf, ok := p.(*PDFParser)
	if !ok || !pdf.FallbackPdftotext {
		t.Errorf("expected PDF parser with fallback enabled, got %#v", p)
	}
}
