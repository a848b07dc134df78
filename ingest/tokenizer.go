// Package ingest parses the raw spreadsheet-export feeds into the
// unified inventory model.
package ingest

// Rows tokenizes raw CSV text into rows of unquoted fields.
//
// All three feed shapes go through this single tokenizer: quotes toggle
// quoted-field mode, doubled quotes inside a quoted field unescape to one
// literal quote, commas and line breaks separate only outside quotes, and
// CRLF collapses to a single row break. Rows may be ragged; callers index
// defensively.
func Rows(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    []rune
		inQuotes bool
	)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field = append(field, '"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			row = append(row, string(field))
			field = field[:0]
		case (ch == '\r' || ch == '\n') && !inQuotes:
			if ch == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			row = append(row, string(field))
			rows = append(rows, row)
			row = nil
			field = field[:0]
		default:
			field = append(field, ch)
		}
	}
	if len(field) > 0 || len(row) > 0 {
		row = append(row, string(field))
		rows = append(rows, row)
	}
	return rows
}

// cell returns row[i] or "" when the row is too short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
