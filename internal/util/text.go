package util

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the Combining Diacritical Marks block.
var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
})

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(combiningMarks))
	},
}

// Normalize lowercases s, decomposes it, drops diacritical marks and trims
// surrounding whitespace. Header matching and search use the same form.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(out)
}

// Words splits the normalized form of s into letter/digit runs.
func Words(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// FieldKey turns a free-form header label into a stable key made of its
// normalized words joined by underscores. Returns "" when nothing is left.
func FieldKey(label string) string {
	return strings.Join(Words(label), "_")
}

// Blank reports whether every cell is empty or whitespace.
func Blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
