package pipeline

import (
	"fmt"
	"strings"

	"biblioteca/internal"
	"biblioteca/internal/util"
)

// HeaderStrategy names one way of finding the header row.
type HeaderStrategy string

const (
	StrategyContent    HeaderStrategy = "content"
	StrategyPositional HeaderStrategy = "positional"
)

const DefaultHeaderScanRows = 8

var DefaultHeaderStrategies = []HeaderStrategy{StrategyContent, StrategyPositional}

// titleProbes mark a row as the header when any cell contains one of them.
var titleProbes = []string{"titul", "title"}

type HeaderOptions struct {
	ScanRows   int
	Strategies []HeaderStrategy
}

func (o HeaderOptions) withDefaults() HeaderOptions {
	if o.ScanRows <= 0 {
		o.ScanRows = DefaultHeaderScanRows
	}
	if len(o.Strategies) == 0 {
		o.Strategies = DefaultHeaderStrategies
	}
	return o
}

// ParseHeaderStrategies reads a comma separated strategy list such as
// "content,positional".
func ParseHeaderStrategies(value string) ([]HeaderStrategy, error) {
	var out []HeaderStrategy
	for _, part := range strings.Split(value, ",") {
		s := HeaderStrategy(strings.ToLower(strings.TrimSpace(part)))
		switch s {
		case "":
			continue
		case StrategyContent, StrategyPositional:
			out = append(out, s)
		default:
			return nil, fmt.Errorf("unknown header strategy: %s", part)
		}
	}
	return out, nil
}

// HeaderLocation is the outcome of LocateHeader.
type HeaderLocation struct {
	Row      int
	Strategy HeaderStrategy
}

// LocateHeaderRow returns the index of the row holding column labels.
func LocateHeaderRow(grid internal.Grid, opts HeaderOptions) int {
	return LocateHeader(grid, opts).Row
}

// LocateHeader tries each strategy in order and reports which one matched.
// An empty grid, or a grid where no strategy matches, yields row 0.
func LocateHeader(grid internal.Grid, opts HeaderOptions) HeaderLocation {
	opts = opts.withDefaults()
	if len(grid) == 0 {
		return HeaderLocation{}
	}
	for _, s := range opts.Strategies {
		var (
			row int
			ok  bool
		)
		switch s {
		case StrategyContent:
			row, ok = contentSignalRow(grid, opts.ScanRows)
		case StrategyPositional:
			row, ok = positionalRow(grid)
		}
		if ok {
			return HeaderLocation{Row: row, Strategy: s}
		}
	}
	return HeaderLocation{}
}

func contentSignalRow(grid internal.Grid, window int) (int, bool) {
	for i := 0; i < len(grid) && i < window; i++ {
		for _, cell := range grid[i] {
			norm := util.Normalize(cell)
			for _, probe := range titleProbes {
				if strings.Contains(norm, probe) {
					return i, true
				}
			}
		}
	}
	return 0, false
}

// positionalRow treats the first non-empty row as a banner and takes the row
// after it, unless that row is empty or missing.
func positionalRow(grid internal.Grid) (int, bool) {
	for i, row := range grid {
		if util.Blank(row) {
			continue
		}
		if i+1 < len(grid) && !util.Blank(grid[i+1]) {
			return i + 1, true
		}
		return i, true
	}
	return 0, false
}
