package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"biblioteca/internal"
)

func mkXLSX(rows [][]any) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	_, _ = f.WriteTo(buf)
	return buf.Bytes()
}

func TestXLSXDecoder(t *testing.T) {
	blob := mkXLSX([][]any{
		{"Catálogo Salud"},
		{"Título", "Autor", "Año"},
		{"Anatomía", "Gray", 2019},
	})
	grid, err := XLSXDecoder{}.DecodeGrid(blob)
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"Anatomía", "Gray", "2019"}, grid[2])
}

func TestXLSXDecoderCorrupt(t *testing.T) {
	_, err := XLSXDecoder{}.DecodeGrid([]byte("not a zip"))
	assert.Error(t, err)
}

func TestHTMLDecoder(t *testing.T) {
	html := `<html><body>
<table><tr><td>menu</td></tr></table>
<table>
<tr><th>Título</th><th>Autor</th></tr>
<tr><td> Redes </td><td>Tanenbaum</td></tr>
</table></body></html>`
	grid, err := HTMLDecoder{}.DecodeGrid([]byte(html))
	require.NoError(t, err)
	assert.Equal(t, internal.Grid{{"Título", "Autor"}, {"Redes", "Tanenbaum"}}, grid)
}

func TestHTMLDecoderNoTable(t *testing.T) {
	_, err := HTMLDecoder{}.DecodeGrid([]byte("<p>nada</p>"))
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestDecodeText(t *testing.T) {
	text, diags := DecodeText([]byte("\xEF\xBB\xBFTítulo"))
	assert.Equal(t, "Título", text)
	assert.Empty(t, diags)

	// "Año" in Windows-1252.
	text, diags = DecodeText([]byte("A\xF1o"))
	assert.Equal(t, "Año", text)
	require.Len(t, diags, 1)
	assert.Equal(t, internal.DiagEncodingFallback, diags[0].Code)

	// UTF-8 with one stray Latin-1 byte keeps its accents.
	text, diags = DecodeText([]byte("Título;Autor\nCaf\xe9;Pérez"))
	assert.Equal(t, "Título;Autor\nCaf\uFFFD;Pérez", text)
	require.Len(t, diags, 1)
	assert.Equal(t, internal.DiagEncodingReplacement, diags[0].Code)

	text, diags = DecodeText([]byte("Qu\uFFFDmica"))
	assert.Equal(t, "Qu\uFFFDmica", text)
	require.Len(t, diags, 1)
	assert.Equal(t, internal.DiagEncodingReplacement, diags[0].Code)
}
