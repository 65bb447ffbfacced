package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca/internal"
)

func TestParseDelimited(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		delim rune
		want  internal.Grid
	}{
		{
			name:  "simple",
			text:  "a,b,c\n1,2,3\n",
			delim: ',',
			want:  internal.Grid{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:  "doubled quotes",
			text:  `"He said ""hi"", then left",x`,
			delim: ',',
			want:  internal.Grid{{`He said "hi", then left`, "x"}},
		},
		{
			name:  "embedded newline",
			text:  "t;r\n\"Libro\";\"línea uno\nlínea dos\"\n",
			delim: ';',
			want:  internal.Grid{{"t", "r"}, {"Libro", "línea uno\nlínea dos"}},
		},
		{
			name:  "delimiter only splits outside quotes",
			text:  "\"a;b\";c",
			delim: ';',
			want:  internal.Grid{{"a;b", "c"}},
		},
		{
			name:  "crlf and lone cr",
			text:  "a,b\r\n1,2\r3,4",
			delim: ',',
			want:  internal.Grid{{"a", "b"}, {"1", "2"}, {"3", "4"}},
		},
		{
			name:  "trims cells",
			text:  "  a , b  \n",
			delim: ',',
			want:  internal.Grid{{"a", "b"}},
		},
		{
			name:  "unterminated quote",
			text:  "a,\"sin cerrar\nsigue",
			delim: ',',
			want:  internal.Grid{{"a", "sin cerrar\nsigue"}},
		},
		{
			name:  "bom stripped",
			text:  "\uFEFFTítulo,Autor\nX,\uFEFFY",
			delim: ',',
			want:  internal.Grid{{"Título", "Autor"}, {"X", "Y"}},
		},
		{
			name:  "blank line kept as row",
			text:  "a\n\nb",
			delim: ',',
			want:  internal.Grid{{"a"}, {""}, {"b"}},
		},
		{
			name:  "trailing delimiter",
			text:  "a,b,\n",
			delim: ',',
			want:  internal.Grid{{"a", "b", ""}},
		},
		{
			name:  "empty input",
			text:  "",
			delim: ',',
			want:  nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseDelimited(tc.text, tc.delim))
		})
	}
}

func TestParseDelimitedNoSpuriousRow(t *testing.T) {
	text := "Título;Resumen\n\"Química\";\"Primera línea\r\nSegunda línea\"\n\"Física\";\"corto\"\n"
	grid := ParseDelimited(text, ';')
	require.Len(t, grid, 3)
	assert.Equal(t, "Primera línea\r\nSegunda línea", grid[1][1])
	assert.Equal(t, []string{"Física", "corto"}, grid[2])
}
