package catalog

import (
	"biblioteca/internal"
	"biblioteca/internal/util"
)

// Index holds the normalized title of every record and the record
// positions of each category, computed once per catalog.
type Index struct {
	Titles     []string
	ByCategory map[string][]int
}

func BuildIndex(records []internal.Record) *Index {
	idx := &Index{
		Titles:     make([]string, len(records)),
		ByCategory: map[string][]int{},
	}
	for i, r := range records {
		idx.Titles[i] = util.Normalize(r.Title())
		idx.ByCategory[r.Category] = append(idx.ByCategory[r.Category], i)
	}
	return idx
}
