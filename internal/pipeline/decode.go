package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"biblioteca/internal"
	"biblioteca/internal/util"
)

// GridDecoder turns a spreadsheet container into rows of cell strings.
type GridDecoder interface {
	DecodeGrid(content []byte) (internal.Grid, error)
}

var ErrNoTable = errors.New("no table found")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText returns content as a string. Content that is not UTF-8 at all
// is read as Windows-1252, the usual encoding of spreadsheet CSV exports on
// Windows. UTF-8 content with a few stray invalid bytes keeps its encoding
// and the bad bytes become U+FFFD.
func DecodeText(content []byte) (string, []internal.Diagnostic) {
	content = bytes.TrimPrefix(content, utf8BOM)

	var diags []internal.Diagnostic
	if !utf8.Valid(content) {
		if !hasMultiByteRune(content) {
			decoded, err := charmap.Windows1252.NewDecoder().Bytes(content)
			if err == nil {
				diags = append(diags, internal.Diagnostic{
					Code:    internal.DiagEncodingFallback,
					Message: "content is not valid UTF-8, decoded as Windows-1252",
				})
				return string(decoded), diags
			}
		}
		content = bytes.ToValidUTF8(content, []byte(string(utf8.RuneError)))
	}

	text := string(content)
	if n := strings.Count(text, string(utf8.RuneError)); n > 0 {
		diags = append(diags, internal.Diagnostic{
			Code:    internal.DiagEncodingReplacement,
			Message: fmt.Sprintf("found %d replacement characters, text may be mis-decoded", n),
		})
	}
	return text, diags
}

// hasMultiByteRune reports whether content holds at least one well-formed
// multi-byte UTF-8 sequence.
func hasMultiByteRune(content []byte) bool {
	for len(content) > 0 {
		r, size := utf8.DecodeRune(content)
		if size > 1 && r != utf8.RuneError {
			return true
		}
		content = content[size:]
	}
	return false
}

// XLSXDecoder reads one worksheet. With Sheet empty it uses the first sheet
// that has a non-blank row.
type XLSXDecoder struct {
	Sheet string
}

func (d XLSXDecoder) DecodeGrid(content []byte) (internal.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if d.Sheet != "" {
		sheets = []string{d.Sheet}
	}
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			if d.Sheet != "" {
				return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
			}
			continue
		}
		for _, row := range rows {
			if !util.Blank(row) {
				return internal.Grid(rows), nil
			}
		}
	}
	return internal.Grid{}, nil
}

// HTMLDecoder reads the first table with at least two rows, the shape of a
// spreadsheet "publish to web" export.
type HTMLDecoder struct{}

func (HTMLDecoder) DecodeGrid(content []byte) (internal.Grid, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var grid internal.Grid
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return true
		}
		rows.Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			grid = append(grid, cells)
		})
		return false
	})
	if grid == nil {
		return nil, ErrNoTable
	}
	return grid, nil
}
