package pipeline

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"biblioteca/internal"
)

// ExportRecordsToXLSX writes records to a single-sheet workbook: category,
// the canonical fields, then any other keys found, sorted.
func ExportRecordsToXLSX(records []internal.Record, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	columns := exportColumns(records)
	headers := append([]string{"category"}, fieldNames(columns)...)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		r := i + 2
		set := func(col int, value string) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, rec.Category)
		for j, field := range columns {
			set(j+2, rec.Get(field))
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func exportColumns(records []internal.Record) []internal.Field {
	columns := append([]internal.Field{}, internal.CanonicalFields...)
	extra := map[internal.Field]struct{}{}
	for _, rec := range records {
		for k := range rec.Fields {
			if !k.Canonical() {
				extra[k] = struct{}{}
			}
		}
	}
	keys := make([]internal.Field, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return append(columns, keys...)
}

func fieldNames(fields []internal.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
