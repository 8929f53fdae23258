package upload

import "strings"

// ParsedRow is one data line of an uploaded CSV. RowNumber is 1-based with
// the header counted as row 1, matching what an operator sees in a
// spreadsheet. Data maps lowercased header name to the raw cell string.
type ParsedRow struct {
	RowNumber int
	Data      map[string]string
}

// Document is the result of parsing one CSV upload.
type Document struct {
	Headers []string
	Rows    []ParsedRow
}

// Get returns the raw trimmed value for a column, and whether the column
// existed in the upload at all.
func (r ParsedRow) Get(col string) (string, bool) {
	v, ok := r.Data[col]
	return strings.TrimSpace(v), ok
}

// ParseCSV splits raw delimited text into headers and rows. It is purely
// lexical: blank lines are dropped, headers are lowercased with a leading
// BOM stripped, quoted fields may contain commas and a doubled quote decodes
// to one literal quote. Rows shorter than the header list are padded with
// empty strings; validation of the values happens downstream. Empty input
// yields an empty document, not an error.
func ParseCSV(text string) Document {
	var doc Document

	lines := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})

	lineNo := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineNo++

		fields := splitLine(line)

		if lineNo == 1 {
			headers := make([]string, len(fields))
			for i, h := range fields {
				h = strings.TrimPrefix(h, "\uFEFF")
				headers[i] = strings.ToLower(strings.TrimSpace(h))
			}
			doc.Headers = headers
			continue
		}

		data := make(map[string]string, len(doc.Headers))
		for i, h := range doc.Headers {
			if i < len(fields) {
				data[h] = strings.TrimSpace(fields[i])
			} else {
				data[h] = ""
			}
		}
		doc.Rows = append(doc.Rows, ParsedRow{RowNumber: lineNo, Data: data})
	}

	return doc
}

// splitLine splits one CSV line on commas, honouring double-quoted fields.
// Embedded newlines are not supported: the line split has already happened.
func splitLine(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(ch)
		}
	}
	fields = append(fields, cur.String())

	return fields
}
