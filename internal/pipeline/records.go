package pipeline

import (
	"strings"

	"biblioteca/internal"
	"biblioteca/internal/util"
)

const (
	overflowSeparator  = " | "
	duplicateSeparator = "; "
)

// BuildRecords zips every non-blank row after headerRow with mapping.
// Missing trailing cells become "", surplus cells are appended to the
// summary field, or to the overflow key when the source has no summary
// column. All records of one call share the same key set.
func BuildRecords(grid internal.Grid, headerRow int, mapping []internal.Field, category string) []internal.Record {
	if headerRow < 0 || headerRow >= len(grid) {
		return []internal.Record{}
	}

	spill := internal.FieldSummary
	if !hasField(mapping, internal.FieldSummary) {
		spill = internal.FieldOverflow
	}

	out := make([]internal.Record, 0, len(grid)-headerRow-1)
	for _, row := range grid[headerRow+1:] {
		if util.Blank(row) {
			continue
		}
		out = append(out, buildRecord(row, mapping, spill, category))
	}
	return out
}

func buildRecord(row []string, mapping []internal.Field, spill internal.Field, category string) internal.Record {
	fields := make(map[internal.Field]string, len(mapping)+1)
	if spill == internal.FieldOverflow {
		fields[internal.FieldOverflow] = ""
	}

	for i, key := range mapping {
		value := ""
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}
		prev, seen := fields[key]
		switch {
		case !seen || prev == "":
			fields[key] = value
		case value != "":
			fields[key] = prev + duplicateSeparator + value
		}
	}

	if len(row) > len(mapping) {
		extra := make([]string, 0, len(row)-len(mapping))
		for _, c := range row[len(mapping):] {
			if c = strings.TrimSpace(c); c != "" {
				extra = append(extra, c)
			}
		}
		if len(extra) > 0 {
			joined := strings.Join(extra, overflowSeparator)
			if fields[spill] != "" {
				joined = fields[spill] + overflowSeparator + joined
			}
			fields[spill] = joined
		}
	}

	return internal.Record{Category: category, Fields: fields}
}
