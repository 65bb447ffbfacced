package web

import (
	"net/http"
	"strings"
	"time"

	"biblioteca/internal"
	"biblioteca/internal/catalog"
	"biblioteca/internal/config"
)

const (
	stateOK          = "ok"
	stateUnavailable = "unavailable"
)

type book struct {
	Category      string                    `json:"category"`
	CategoryLabel string                    `json:"categoryLabel"`
	Title         string                    `json:"title"`
	Author        string                    `json:"author"`
	Fields        map[internal.Field]string `json:"fields"`
}

type booksResponse struct {
	State    string   `json:"state"`
	Query    string   `json:"query"`
	Category string   `json:"category"`
	Count    int      `json:"count"`
	Books    []book   `json:"books"`
	Failed   []string `json:"failedSources,omitempty"`
}

type sourcesResponse struct {
	RunID      string                 `json:"runId"`
	LoadedAt   time.Time              `json:"loadedAt"`
	Categories []catalog.Category     `json:"categories"`
	Sources    []catalog.SourceStatus `json:"sources"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	cat := s.handle.Current()
	status := http.StatusOK
	if cat.Empty() {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, map[string]any{
		"ok":      !cat.Empty(),
		"records": len(cat.Records),
		"failed":  len(cat.Failed()),
	})
}

// handleBooks answers a title search. An empty catalog is reported as
// unavailable so the front end can tell "failed to load" from "no matches".
func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	cat := s.handle.Current()
	query := r.URL.Query().Get("q")
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = config.CategoryAll
	}

	resp := booksResponse{
		State:    stateOK,
		Query:    query,
		Category: category,
		Books:    []book{},
	}
	for _, f := range cat.Failed() {
		resp.Failed = append(resp.Failed, f.Category)
	}
	if cat.Empty() {
		resp.State = stateUnavailable
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	for _, rec := range cat.Search(query, category) {
		resp.Books = append(resp.Books, book{
			Category:      rec.Category,
			CategoryLabel: cat.Label(rec.Category),
			Title:         rec.DisplayTitle(),
			Author:        rec.DisplayAuthor(),
			Fields:        rec.Fields,
		})
	}
	resp.Count = len(resp.Books)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	cat := s.handle.Current()
	s.writeJSON(w, http.StatusOK, sourcesResponse{
		RunID:      cat.RunID,
		LoadedAt:   cat.LoadedAt,
		Categories: cat.Categories(),
		Sources:    cat.Sources,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	cat, err := s.handle.Reload(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, sourcesResponse{
		RunID:      cat.RunID,
		LoadedAt:   cat.LoadedAt,
		Categories: cat.Categories(),
		Sources:    cat.Sources,
	})
}
