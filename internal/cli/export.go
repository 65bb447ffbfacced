package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"biblioteca/internal/config"
	"biblioteca/internal/pipeline"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	var (
		category string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "export [query]",
		Short: "Write search results to an xlsx workbook",
		Example: `  catalogo export --out catalogo.xlsx
  catalogo export -c tecnologias --out tec.xlsx diseño`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(out) == "" {
				return fmt.Errorf("--out is required")
			}
			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			cat, _, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if err := reportFailures(w, cat); err != nil {
				return err
			}

			records := cat.Search(query, category)
			if err := pipeline.ExportRecordsToXLSX(records, out); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			printSuccess(w, "exported %d records to %s", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", config.CategoryAll, "Category to export, or \"all\"")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output xlsx path")

	return cmd
}
