package catalog

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"biblioteca/internal"
	"biblioteca/internal/config"
	"biblioteca/internal/util"
)

// Search returns the records of category ("all" or "" for every category)
// whose normalized title contains the normalized query, sorted by title
// with accent-insensitive Spanish collation. An empty query matches every
// record of the category.
func Search(c *Catalog, query, category string) []internal.Record {
	if c == nil {
		return []internal.Record{}
	}
	idx := c.titleIndex()

	positions := c.candidates(idx, category)
	q := util.Normalize(query)
	hits := make([]int, 0, len(positions))
	for _, i := range positions {
		if q == "" || strings.Contains(idx.Titles[i], q) {
			hits = append(hits, i)
		}
	}

	col := collate.New(language.Spanish, collate.Loose)
	slices.SortStableFunc(hits, func(a, b int) int {
		return col.CompareString(idx.Titles[a], idx.Titles[b])
	})

	out := make([]internal.Record, len(hits))
	for n, i := range hits {
		rec := c.Records[i]
		out[n] = internal.Record{Category: rec.Category, Fields: maps.Clone(rec.Fields)}
	}
	return out
}

// Search is a method form of the package-level Search.
func (c *Catalog) Search(query, category string) []internal.Record {
	return Search(c, query, category)
}

func (c *Catalog) candidates(idx *Index, category string) []int {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, config.CategoryAll) {
		all := make([]int, len(c.Records))
		for i := range all {
			all[i] = i
		}
		return all
	}
	for name, positions := range idx.ByCategory {
		if strings.EqualFold(name, category) {
			return positions
		}
	}
	return nil
}
