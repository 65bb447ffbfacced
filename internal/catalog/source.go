package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"biblioteca/internal"
	"biblioteca/internal/config"
	"biblioteca/internal/pipeline"
)

var formatsByExt = map[string]internal.SourceFormat{
	"csv":  internal.FormatCSV,
	"tsv":  internal.FormatTSV,
	"txt":  internal.FormatText,
	"xlsx": internal.FormatXLSX,
	"xlsm": internal.FormatXLSM,
	"html": internal.FormatHTML,
	"htm":  internal.FormatHTM,
}

// resolved is a source whose content was found and ingested.
type resolved struct {
	location string
	format   internal.SourceFormat
	ingested pipeline.Ingested
	attempts []Attempt
}

func isURL(base string) bool {
	lower := strings.ToLower(base)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// candidates lists the locations of src in extension preference order.
func (l *Loader) candidates(src config.Source) []string {
	base := strings.TrimSpace(src.Base)
	if !isURL(base) && !filepath.IsAbs(base) {
		base = filepath.Join(l.cfg.DataDir, base)
	}
	exts := src.SourceExtensions()
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, base+"."+ext)
	}
	return out
}

// resolve tries each candidate location in order and returns the first one
// that can be fetched and ingested.
func (l *Loader) resolve(ctx context.Context, src config.Source) (resolved, error) {
	var attempts []Attempt
	for _, location := range l.candidates(src) {
		if err := ctx.Err(); err != nil {
			return resolved{attempts: attempts}, &SourceError{Category: src.Category, Attempts: attempts, Cause: err}
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(location), "."))
		format, ok := formatsByExt[ext]
		if !ok {
			attempts = append(attempts, Attempt{Location: location, Err: fmt.Errorf("unsupported extension %q", ext)})
			continue
		}

		fetcher := l.files
		if isURL(location) {
			fetcher = l.web
		}
		content, err := fetcher.Fetch(ctx, location)
		if err != nil {
			attempts = append(attempts, Attempt{Location: location, Err: err})
			continue
		}

		ingested, err := pipeline.Ingest(content, format, src.Category, l.opts)
		if err != nil {
			attempts = append(attempts, Attempt{Location: location, Err: err})
			continue
		}
		return resolved{location: location, format: format, ingested: ingested, attempts: attempts}, nil
	}
	return resolved{attempts: attempts}, &SourceError{Category: src.Category, Attempts: attempts}
}
