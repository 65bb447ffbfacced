package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca/internal"
)

func TestLocateHeaderRow(t *testing.T) {
	cases := []struct {
		name string
		grid internal.Grid
		want int
	}{
		{name: "empty grid", grid: nil, want: 0},
		{
			name: "header first",
			grid: internal.Grid{{"Título", "Autor"}, {"X", "Y"}},
			want: 0,
		},
		{
			name: "banner then header",
			grid: internal.Grid{{"Catálogo 2024"}, {"Título", "Autor"}, {"X", "Y"}},
			want: 1,
		},
		{
			name: "english header after blank rows",
			grid: internal.Grid{{""}, {"", ""}, {"Title", "Author"}, {"X", "Y"}},
			want: 2,
		},
		{
			name: "positional takes row after anchor",
			grid: internal.Grid{{""}, {"Biblioteca"}, {"Nombre", "Autor"}, {"X", "Y"}},
			want: 2,
		},
		{
			name: "positional keeps anchor when next row is empty",
			grid: internal.Grid{{"Nombre", "Autor"}, {"", ""}, {"X", "Y"}},
			want: 0,
		},
		{
			name: "positional keeps anchor on last row",
			grid: internal.Grid{{""}, {"Nombre", "Autor"}},
			want: 1,
		},
		{
			name: "all blank",
			grid: internal.Grid{{""}, {" "}},
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LocateHeaderRow(tc.grid, HeaderOptions{}))
		})
	}
}

func TestLocateHeaderScanWindow(t *testing.T) {
	grid := internal.Grid{{"a"}, {"b"}, {"c"}, {"Título"}}
	loc := LocateHeader(grid, HeaderOptions{ScanRows: 3})
	assert.Equal(t, StrategyPositional, loc.Strategy)
	assert.Equal(t, 1, loc.Row)

	loc = LocateHeader(grid, HeaderOptions{ScanRows: 4})
	assert.Equal(t, StrategyContent, loc.Strategy)
	assert.Equal(t, 3, loc.Row)
}

func TestLocateHeaderStrategyOrder(t *testing.T) {
	grid := internal.Grid{{"Catálogo"}, {"Nombre"}, {"Título"}}
	loc := LocateHeader(grid, HeaderOptions{Strategies: []HeaderStrategy{StrategyPositional, StrategyContent}})
	assert.Equal(t, StrategyPositional, loc.Strategy)
	assert.Equal(t, 1, loc.Row)

	loc = LocateHeader(grid, HeaderOptions{Strategies: []HeaderStrategy{StrategyContent}})
	assert.Equal(t, 2, loc.Row)
}

func TestParseHeaderStrategies(t *testing.T) {
	got, err := ParseHeaderStrategies(" Positional , content,")
	require.NoError(t, err)
	assert.Equal(t, []HeaderStrategy{StrategyPositional, StrategyContent}, got)

	_, err = ParseHeaderStrategies("content,guess")
	assert.Error(t, err)
}
