package catalog

import (
	"sync"
	"time"

	"biblioteca/internal"
)

// SourceStatus is the load outcome of one source.
type SourceStatus struct {
	Category       string                `json:"category"`
	Label          string                `json:"label"`
	OK             bool                  `json:"ok"`
	Location       string                `json:"location,omitempty"`
	Format         internal.SourceFormat `json:"format,omitempty"`
	Delimiter      string                `json:"delimiter,omitempty"`
	HeaderRow      int                   `json:"headerRow"`
	HeaderStrategy string                `json:"headerStrategy,omitempty"`
	Headers        []string              `json:"headers,omitempty"`
	RecordCount    int                   `json:"recordCount"`
	Diagnostics    []internal.Diagnostic `json:"diagnostics,omitempty"`
	Attempts       []Attempt             `json:"attempts,omitempty"`
	Error          string                `json:"error,omitempty"`
	Duration       time.Duration         `json:"durationNs"`

	Err error `json:"-"`
}

// Catalog is the merged, read-only collection built by one load.
type Catalog struct {
	RunID    string            `json:"runId"`
	LoadedAt time.Time         `json:"loadedAt"`
	Records  []internal.Record `json:"-"`
	Sources  []SourceStatus    `json:"sources"`

	indexOnce sync.Once
	index     *Index
}

// Category describes one category for filter menus.
type Category struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	OK       bool   `json:"ok"`
}

func newCatalog(runID string, statuses []SourceStatus, perSource [][]internal.Record) *Catalog {
	total := 0
	for _, recs := range perSource {
		total += len(recs)
	}
	records := make([]internal.Record, 0, total)
	for _, recs := range perSource {
		records = append(records, recs...)
	}
	return &Catalog{
		RunID:    runID,
		LoadedAt: time.Now().UTC(),
		Records:  records,
		Sources:  statuses,
		index:    BuildIndex(records),
	}
}

// titleIndex returns the search index, building it on first use for
// catalogs assembled without newCatalog.
func (c *Catalog) titleIndex() *Index {
	c.indexOnce.Do(func() {
		if c.index == nil {
			c.index = BuildIndex(c.Records)
		}
	})
	return c.index
}

// Empty reports whether the catalog has no records at all. Consumers show a
// "failed to load" state for it rather than "no matches".
func (c *Catalog) Empty() bool {
	return c == nil || len(c.Records) == 0
}

func (c *Catalog) AllFailed() bool {
	if c == nil || len(c.Sources) == 0 {
		return true
	}
	for _, s := range c.Sources {
		if s.OK {
			return false
		}
	}
	return true
}

// Failed returns the statuses of sources that could not be loaded.
func (c *Catalog) Failed() []SourceStatus {
	var out []SourceStatus
	if c == nil {
		return out
	}
	for _, s := range c.Sources {
		if !s.OK {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) Status(category string) (SourceStatus, bool) {
	if c == nil {
		return SourceStatus{}, false
	}
	for _, s := range c.Sources {
		if s.Category == category {
			return s, true
		}
	}
	return SourceStatus{}, false
}

func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	out := make([]Category, 0, len(c.Sources))
	for _, s := range c.Sources {
		out = append(out, Category{Category: s.Category, Label: s.Label, Count: s.RecordCount, OK: s.OK})
	}
	return out
}

// Label returns the display label of category, or the category itself.
func (c *Catalog) Label(category string) string {
	if s, ok := c.Status(category); ok && s.Label != "" {
		return s.Label
	}
	return category
}
