// Package cli implements the catalogo command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"biblioteca/internal/catalog"
	"biblioteca/internal/config"
	"biblioteca/internal/logger"
)

var (
	// Version is set at build time.
	Version = "dev"

	successIcon = color.New(color.FgGreen).Sprint("✓")
	warningIcon = color.New(color.FgYellow).Sprint("⚠")
	errorIcon   = color.New(color.FgRed).Sprint("✗")

	bold    = color.New(color.Bold).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
	info    = color.New(color.FgCyan).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

// loadTimeout bounds a whole catalog load from the CLI.
const loadTimeout = 2 * time.Minute

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catalogo",
		Short: "Search the library catalog",
		Long: `catalogo loads the faculty catalog files of the library, tolerating the
quirks of hand-edited spreadsheets (unknown delimiters, quoted line breaks,
title rows above the header), and searches them by title.

Sources default to the "salud" and "tecnologias" files under CATALOG_DATA_DIR;
set CATALOG_SOURCES_FILE to a YAML file to configure others.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewSearchCmd())
	rootCmd.AddCommand(NewSourcesCmd())
	rootCmd.AddCommand(NewExportCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "catalogo %s\n", Version)
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, "%s", err.Error())
		return err
	}
	return nil
}

// setup loads configuration and initialises the root logger.
func setup() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "catalogo"})
	return cfg, logger.Get(), nil
}

func loadCatalog(ctx context.Context) (*catalog.Catalog, config.Config, error) {
	cfg, log, err := setup()
	if err != nil {
		return nil, cfg, err
	}
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	cat, err := catalog.NewLoader(cfg, log).Load(ctx, cfg.Sources)
	if err != nil {
		return nil, cfg, err
	}
	return cat, cfg, nil
}

// errCatalogUnavailable is returned when no source could be loaded; it is
// distinct from a search without matches.
var errCatalogUnavailable = errors.New("no se pudo cargar el catálogo")

// reportFailures prints one warning per failed source and returns
// errCatalogUnavailable when nothing loaded at all.
func reportFailures(w io.Writer, cat *catalog.Catalog) error {
	for _, s := range cat.Failed() {
		printWarning(w, "%s: %s", s.Label, dim(s.Error))
	}
	if cat.Empty() {
		return errCatalogUnavailable
	}
	return nil
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", successIcon, fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", warningIcon, fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", errorIcon, fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s: %s\n", dim(label), value)
}
