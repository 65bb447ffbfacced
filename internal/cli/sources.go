package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"biblioteca/internal/catalog"
)

// NewSourcesCmd creates the sources command.
func NewSourcesCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Show how each catalog source loaded",
		Long: `Load every configured source and report, per category, where it was read
from, the detected delimiter and header row, and any problems found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			printSources(cmd.OutOrStdout(), cat, verbose)
			if cat.AllFailed() {
				return errCatalogUnavailable
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detected headers and every location tried")

	return cmd
}

func printSources(w io.Writer, cat *catalog.Catalog, verbose bool) {
	for _, s := range cat.Sources {
		if !s.OK {
			printError(w, "%s (%s)", bold(s.Label), s.Category)
			printInfo(w, "error", s.Error)
			fmt.Fprintln(w)
			continue
		}

		printSuccess(w, "%s (%s): %d libros", bold(s.Label), s.Category, s.RecordCount)
		printInfo(w, "location", s.Location)
		printInfo(w, "format", string(s.Format))
		if s.Delimiter != "" {
			printInfo(w, "delimiter", delimiterName(s.Delimiter))
		}
		printInfo(w, "header row", fmt.Sprintf("%d (%s)", s.HeaderRow+1, s.HeaderStrategy))
		for _, d := range s.Diagnostics {
			printWarning(w, "%s", warning(d.Message))
		}
		if verbose {
			printInfo(w, "headers", strings.Join(s.Headers, " | "))
			for _, a := range s.Attempts {
				printInfo(w, "skipped", fmt.Sprintf("%s (%v)", a.Location, a.Err))
			}
		}
		fmt.Fprintln(w)
	}
}

func delimiterName(d string) string {
	switch d {
	case "\t":
		return "tab"
	case ",":
		return "comma"
	case ";":
		return "semicolon"
	default:
		return d
	}
}
