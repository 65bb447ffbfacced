package internal

import (
	"slices"
	"strings"
)

// Field is a record key: one of the canonical fields below or a fallback key
// derived from an unrecognized header label.
type Field string

const (
	FieldTitle         Field = "title"
	FieldAuthor        Field = "author"
	FieldPublisher     Field = "publisher"
	FieldEdition       Field = "edition"
	FieldYear          Field = "year"
	FieldISBN          Field = "isbn"
	FieldProgram       Field = "program"
	FieldSubject       Field = "subject"
	FieldShelfLocation Field = "shelfLocation"
	FieldSummary       Field = "summary"

	// FieldOverflow holds trailing cells of sources that have no summary column.
	FieldOverflow Field = "overflow"
)

// CanonicalFields lists the canonical set in display order.
var CanonicalFields = []Field{
	FieldTitle, FieldAuthor, FieldPublisher, FieldEdition, FieldYear,
	FieldISBN, FieldProgram, FieldSubject, FieldShelfLocation, FieldSummary,
}

func (f Field) Canonical() bool {
	for _, c := range CanonicalFields {
		if c == f {
			return true
		}
	}
	return false
}

// Grid is the parsed cell matrix of one source, rows in file order.
// Rows may differ in length.
type Grid [][]string

type SourceFormat string

const (
	FormatCSV  SourceFormat = "csv"
	FormatTSV  SourceFormat = "tsv"
	FormatText SourceFormat = "txt"
	FormatXLSX SourceFormat = "xlsx"
	FormatXLSM SourceFormat = "xlsm"
	FormatHTML SourceFormat = "html"
	FormatHTM  SourceFormat = "htm"
)

// Delimited reports whether the format carries delimiter-separated text.
func (f SourceFormat) Delimited() bool {
	switch f {
	case FormatCSV, FormatTSV, FormatText:
		return true
	default:
		return false
	}
}

type Record struct {
	Category string           `json:"category"`
	Fields   map[Field]string `json:"fields"`
}

// Get returns the value of f, or "" when the record has no such key.
func (r Record) Get(f Field) string {
	return r.Fields[f]
}

func (r Record) Title() string {
	return r.Fields[FieldTitle]
}

// ExtraKeys returns the non-canonical keys of r, sorted.
func (r Record) ExtraKeys() []Field {
	var out []Field
	for k := range r.Fields {
		if !k.Canonical() {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// Placeholders shown for records without a title or author.
const (
	UntitledLabel      = "Sin título"
	UnknownAuthorLabel = "Desconocido"
)

func (r Record) DisplayTitle() string {
	if t := strings.TrimSpace(r.Fields[FieldTitle]); t != "" {
		return t
	}
	return UntitledLabel
}

func (r Record) DisplayAuthor() string {
	if a := strings.TrimSpace(r.Fields[FieldAuthor]); a != "" {
		return a
	}
	return UnknownAuthorLabel
}

type DiagnosticCode string

const (
	DiagMissingTitle        DiagnosticCode = "missing_title_column"
	DiagEncodingReplacement DiagnosticCode = "encoding_replacement"
	DiagEncodingFallback    DiagnosticCode = "encoding_fallback"
	DiagPositionalHeader    DiagnosticCode = "positional_header"
)

// Diagnostic is a non-fatal finding raised while ingesting a source.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Message string         `json:"message"`
}
