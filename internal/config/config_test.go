package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CATALOG_SOURCES_FILE", "")
	t.Setenv("CATALOG_HEADER_SCAN_ROWS", "6")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.HeaderScanRows)
	assert.Equal(t, 4096, cfg.DelimiterSample)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTPCORSOrigins)
	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "salud", cfg.Sources[0].Category)
	assert.Equal(t, "Nuevas Tecnologías Interactivas", cfg.Sources[1].DisplayLabel())
}

func TestLoadRejectsUnknownHeaderStrategy(t *testing.T) {
	t.Setenv("CATALOG_SOURCES_FILE", "")
	t.Setenv("CATALOG_HEADER_STRATEGIES", "content,positonal")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positonal")
}

func TestLoadSourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	body := `sources:
  - category: salud
    label: Ciencias de la Salud
    base: https://example.test/catalogo/salud
    extensions: [".CSV", xlsx]
  - category: derecho
    base: derecho
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("CATALOG_SOURCES_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, []string{"csv", "xlsx"}, cfg.Sources[0].SourceExtensions())
	assert.Equal(t, DefaultExtensions, cfg.Sources[1].SourceExtensions())
	assert.Equal(t, "derecho", cfg.Sources[1].DisplayLabel())
}

func TestValidateSources(t *testing.T) {
	cases := []struct {
		name    string
		sources []Source
	}{
		{name: "empty", sources: nil},
		{name: "missing category", sources: []Source{{Base: "x"}}},
		{name: "reserved category", sources: []Source{{Category: "All", Base: "x"}}},
		{name: "missing base", sources: []Source{{Category: "x"}}},
		{name: "duplicate", sources: []Source{{Category: "x", Base: "a"}, {Category: "x", Base: "b"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateSources(tc.sources))
		})
	}
	assert.NoError(t, ValidateSources(DefaultSources()))
}
