package pipeline

import (
	"fmt"

	"biblioteca/internal"
)

type Options struct {
	DelimiterSample int
	Header          HeaderOptions
	XLSX            GridDecoder
	HTML            GridDecoder
}

// Ingested is everything learnt about one source while turning it into
// records.
type Ingested struct {
	Records        []internal.Record
	Delimiter      rune
	HeaderRow      int
	HeaderStrategy HeaderStrategy
	Headers        []string
	Mapping        []internal.Field
	Diagnostics    []internal.Diagnostic
}

// Ingest runs decode, parse, header location, column mapping and record
// building over one source's content. It only fails when a container format
// cannot be decoded; malformed rows and unknown headers degrade silently.
func Ingest(content []byte, format internal.SourceFormat, category string, opts Options) (Ingested, error) {
	var (
		res  Ingested
		grid internal.Grid
	)

	switch {
	case format.Delimited():
		text, diags := DecodeText(content)
		res.Diagnostics = append(res.Diagnostics, diags...)
		res.Delimiter = '\t'
		if format != internal.FormatTSV {
			res.Delimiter = DetectDelimiter(text, opts.DelimiterSample)
		}
		grid = ParseDelimited(text, res.Delimiter)
	default:
		dec, err := opts.decoder(format)
		if err != nil {
			return res, err
		}
		raw, err := dec.DecodeGrid(content)
		if err != nil {
			return res, fmt.Errorf("decode %s: %w", format, err)
		}
		grid = CleanGrid(raw)
	}

	return res.fromGrid(grid, category, opts.Header), nil
}

// IngestGrid runs the pipeline over a grid decoded elsewhere.
func IngestGrid(grid internal.Grid, category string, opts HeaderOptions) Ingested {
	var res Ingested
	return res.fromGrid(CleanGrid(grid), category, opts)
}

func (res Ingested) fromGrid(grid internal.Grid, category string, opts HeaderOptions) Ingested {
	loc := LocateHeader(grid, opts)
	res.HeaderRow = loc.Row
	res.HeaderStrategy = loc.Strategy
	if loc.Strategy == StrategyPositional {
		res.Diagnostics = append(res.Diagnostics, internal.Diagnostic{
			Code:    internal.DiagPositionalHeader,
			Message: fmt.Sprintf("no title-like label found, using row %d as header", loc.Row+1),
		})
	}

	if loc.Row < len(grid) {
		res.Headers = grid[loc.Row]
	}
	res.Mapping = MapHeaders(res.Headers)
	if !hasField(res.Mapping, internal.FieldTitle) {
		res.Diagnostics = append(res.Diagnostics, internal.Diagnostic{
			Code:    internal.DiagMissingTitle,
			Message: "no column maps to title, searches will not match this source",
		})
	}

	res.Records = BuildRecords(grid, loc.Row, res.Mapping, category)
	return res
}

func (o Options) decoder(format internal.SourceFormat) (GridDecoder, error) {
	switch format {
	case internal.FormatXLSX, internal.FormatXLSM:
		if o.XLSX != nil {
			return o.XLSX, nil
		}
		return XLSXDecoder{}, nil
	case internal.FormatHTML, internal.FormatHTM:
		if o.HTML != nil {
			return o.HTML, nil
		}
		return HTMLDecoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported source format: %s", format)
	}
}
