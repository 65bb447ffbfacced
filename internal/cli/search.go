package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"biblioteca/internal"
	"biblioteca/internal/catalog"
	"biblioteca/internal/config"
)

type searchOptions struct {
	category string
	limit    int
	verbose  bool
}

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog by title",
		Long: `Search the catalog by title.

Matching ignores case and accents: "fisiologia" finds "Fisiología". Results
are sorted by title.`,
		Example: `  catalogo search                      # List every book
  catalogo search anatomia             # Titles containing "anatomia"
  catalogo search -c salud farmacologia`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			cat, _, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			return runSearch(cmd.OutOrStdout(), cat, query, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", config.CategoryAll, "Category to search, or \"all\"")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Maximum results to show (0 for all)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show every field of each result")

	return cmd
}

func runSearch(w io.Writer, cat *catalog.Catalog, query string, opts *searchOptions) error {
	if err := reportFailures(w, cat); err != nil {
		return err
	}

	results := cat.Search(query, opts.category)
	if len(results) == 0 {
		fmt.Fprintln(w, "No se encontraron resultados.")
		return nil
	}

	shown := results
	if opts.limit > 0 && len(shown) > opts.limit {
		shown = shown[:opts.limit]
	}
	for _, r := range shown {
		printRecord(w, cat, r, opts.verbose)
	}

	fmt.Fprintln(w)
	if len(shown) < len(results) {
		fmt.Fprintf(w, "%d de %d resultados\n", len(shown), len(results))
	} else {
		fmt.Fprintf(w, "%d resultados\n", len(results))
	}
	return nil
}

func printRecord(w io.Writer, cat *catalog.Catalog, r internal.Record, verbose bool) {
	fmt.Fprintf(w, "%s\n", bold(r.DisplayTitle()))
	fmt.Fprintf(w, "  %s · %s\n", r.DisplayAuthor(), info(cat.Label(r.Category)))
	if !verbose {
		return
	}
	for _, f := range internal.CanonicalFields {
		if f == internal.FieldTitle || f == internal.FieldAuthor {
			continue
		}
		if v := r.Get(f); v != "" {
			printInfo(w, string(f), v)
		}
	}
	for _, f := range r.ExtraKeys() {
		if v := r.Get(f); v != "" {
			printInfo(w, string(f), v)
		}
	}
}
