package pipeline

import (
	"strings"

	"biblioteca/internal"
)

const bom = "\uFEFF"

// ParseDelimited splits text into rows and cells. Quoted fields may contain
// the delimiter, line breaks and doubled quotes. LF, CRLF and a lone CR all
// end a row. An unterminated quote at end of input keeps what was read.
func ParseDelimited(text string, delim rune) internal.Grid {
	text = strings.TrimLeft(text, bom)

	var (
		rows     internal.Grid
		row      []string
		cell     strings.Builder
		inQuotes bool
	)
	flushCell := func() {
		row = append(row, cleanCell(cell.String()))
		cell.Reset()
	}
	flushRow := func() {
		flushCell()
		rows = append(rows, row)
		row = nil
	}

	src := []rune(text)
	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(src) && src[i+1] == '"' {
				cell.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case inQuotes:
			cell.WriteRune(ch)
		case ch == delim:
			flushCell()
		case ch == '\n':
			flushRow()
		case ch == '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			flushRow()
		default:
			cell.WriteRune(ch)
		}
	}
	if cell.Len() > 0 || len(row) > 0 {
		flushRow()
	}
	return rows
}

// cleanCell trims whitespace, stray byte-order marks and one residual pair of
// wrapping quotes.
func cleanCell(s string) string {
	s = strings.ReplaceAll(s, bom, "")
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// CleanGrid applies cell cleanup to a grid produced by another decoder.
func CleanGrid(grid internal.Grid) internal.Grid {
	out := make(internal.Grid, 0, len(grid))
	for _, row := range grid {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cleanCell(c)
		}
		out = append(out, cells)
	}
	return out
}
