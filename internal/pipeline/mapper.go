package pipeline

import (
	"fmt"
	"strings"

	"biblioteca/internal"
	"biblioteca/internal/util"
)

type matchMode int

const (
	// matchContains tests substrings of the normalized label.
	matchContains matchMode = iota
	// matchWord tests whole words of the normalized label.
	matchWord
)

// HeaderRule maps labels that contain any of Probes to Field.
type HeaderRule struct {
	Field  internal.Field
	Probes []string
	mode   matchMode
}

func (r HeaderRule) Match(normalized string, words []string) bool {
	for _, probe := range r.Probes {
		switch r.mode {
		case matchWord:
			for _, w := range words {
				if w == probe {
					return true
				}
			}
		default:
			if strings.Contains(normalized, probe) {
				return true
			}
		}
	}
	return false
}

// HeaderRules are evaluated in order and the first match wins. "titulacion"
// comes before "titul" so programme columns are not read as titles. Year
// matches whole words because "ano" is a common substring, and it precedes
// edition so "Año de edición" is a year.
var HeaderRules = []HeaderRule{
	{Field: internal.FieldProgram, Probes: []string{"titulacion", "programa", "grado", "degree"}},
	{Field: internal.FieldTitle, Probes: []string{"titul", "title"}},
	{Field: internal.FieldAuthor, Probes: []string{"autor", "author"}},
	{Field: internal.FieldISBN, Probes: []string{"isbn"}},
	{Field: internal.FieldYear, Probes: []string{"ano", "anio", "year", "fecha"}, mode: matchWord},
	{Field: internal.FieldPublisher, Probes: []string{"editorial", "editora", "publisher"}},
	{Field: internal.FieldEdition, Probes: []string{"edicion", "edition", "edicao"}},
	{Field: internal.FieldSubject, Probes: []string{"mater", "tematic", "subject", "assunto"}},
	{Field: internal.FieldShelfLocation, Probes: []string{"signatur", "shelf", "ubicacion", "call number"}},
	{Field: internal.FieldSummary, Probes: []string{"resum", "sinopsis", "abstract", "summary", "descripcion"}},
}

// MapHeader maps one label, returning ok=false when no rule matched.
func MapHeader(label string) (internal.Field, bool) {
	norm := util.Normalize(label)
	if norm == "" {
		return "", false
	}
	words := util.Words(norm)
	for _, rule := range HeaderRules {
		if rule.Match(norm, words) {
			return rule.Field, true
		}
	}
	return "", false
}

// MapHeaders maps each header cell, positionally, to a canonical field or to
// a fallback key built from the label ("col<i>" when the label is empty).
func MapHeaders(header []string) []internal.Field {
	out := make([]internal.Field, len(header))
	for i, label := range header {
		if f, ok := MapHeader(label); ok {
			out[i] = f
			continue
		}
		key := util.FieldKey(label)
		if key == "" {
			key = fmt.Sprintf("col%d", i)
		}
		out[i] = internal.Field(key)
	}
	return out
}

func hasField(mapping []internal.Field, f internal.Field) bool {
	for _, m := range mapping {
		if m == f {
			return true
		}
	}
	return false
}
