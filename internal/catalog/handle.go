package catalog

import (
	"context"
	"sync/atomic"

	"biblioteca/internal/config"
)

// Handle owns the current catalog of a long-running process. Reload builds a
// fresh catalog and swaps it in; readers keep whatever catalog they got.
type Handle struct {
	loader  *Loader
	sources []config.Source
	current atomic.Pointer[Catalog]
}

func NewHandle(loader *Loader, sources []config.Source) *Handle {
	h := &Handle{loader: loader, sources: sources}
	h.current.Store(newCatalog("", nil, nil))
	return h
}

// Current never returns nil; before the first load it is an empty catalog.
func (h *Handle) Current() *Catalog {
	return h.current.Load()
}

func (h *Handle) Reload(ctx context.Context) (*Catalog, error) {
	cat, err := h.loader.Load(ctx, h.sources)
	if err != nil {
		return nil, err
	}
	h.current.Store(cat)
	return cat, nil
}
