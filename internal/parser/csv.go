package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files. Each record becomes one line with its
// cells separated by ", "; cells spanning several lines are flattened.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	var text strings.Builder
	for i, row := range records {
		if i > 0 {
			text.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				text.WriteString(", ")
			}
			text.WriteString(strings.Join(strings.Fields(cell), " "))
		}
	}

	return &Document{Title: baseTitle(filename), Text: text.String()}, nil
}
