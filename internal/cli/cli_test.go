package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCatalogDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	t.Setenv("CATALOG_DATA_DIR", dir)
	t.Setenv("CATALOG_SOURCES_FILE", "")
	t.Setenv("LOG_LEVEL", "off")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	writeCatalogDir(t, map[string]string{
		"salud.csv":       "Catálogo de Salud\n\nTítulo;Autor;Año\nFisiología Médica;Guyton;2016\nAnatomía;;2010\n",
		"tecnologias.csv": "titulo,autor\n\"Diseño, interacción\",Norman\n",
	})

	out, err := run(t, "search", "fisiologia")
	require.NoError(t, err)
	assert.Contains(t, out, "Fisiología Médica")
	assert.Contains(t, out, "Ciencias de la Salud")
	assert.Contains(t, out, "1 resultados")

	out, err = run(t, "search", "-c", "salud", "anatomia")
	require.NoError(t, err)
	assert.Contains(t, out, "Desconocido")

	out, err = run(t, "search", "-c", "tecnologias", "-v", "diseno")
	require.NoError(t, err)
	assert.Contains(t, out, "Diseño, interacción")
	assert.Contains(t, out, "Nuevas Tecnologías Interactivas")

	out, err = run(t, "search", "quimica")
	require.NoError(t, err)
	assert.Contains(t, out, "No se encontraron resultados")
}

func TestSearchCommandReportsUnavailableCatalog(t *testing.T) {
	writeCatalogDir(t, nil)

	out, err := run(t, "search", "x")
	require.ErrorIs(t, err, errCatalogUnavailable)
	assert.NotContains(t, out, "No se encontraron resultados")
	assert.Contains(t, out, "Ciencias de la Salud")
}

func TestSourcesCommand(t *testing.T) {
	writeCatalogDir(t, map[string]string{"salud.tsv": "Título\tAutor\nHistología\tRoss\n"})

	out, err := run(t, "sources")
	require.NoError(t, err)
	assert.Contains(t, out, "salud): 1 libros")
	assert.Contains(t, out, "tab")
	assert.Contains(t, out, "tecnologias")
}

func TestExportCommand(t *testing.T) {
	writeCatalogDir(t, map[string]string{"salud.csv": "Título;Autor;Signatura\nB;Y;616\nA;X;611\n"})
	out := filepath.Join(t.TempDir(), "out", "salud.xlsx")

	_, err := run(t, "export", "--out", out)
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "category", rows[0][0])
	assert.Equal(t, "A", rows[1][1])
	assert.Equal(t, "B", rows[2][1])
}

func TestExportRequiresOut(t *testing.T) {
	writeCatalogDir(t, nil)
	_, err := run(t, "export")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "catalogo dev\n", out)
}
