package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"biblioteca/internal/catalog"
	"biblioteca/internal/listener"
	"biblioteca/internal/web"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API",
		Long: `Load the catalog and serve it over HTTP:

  GET  /api/books?q=&category=   title search
  GET  /api/sources              load status per source
  POST /api/reload               reload every source
  GET  /healthz

With CATALOG_RELOAD_INTERVAL_SEC set, sources are reloaded periodically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.HTTPAddr
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			handle := catalog.NewHandle(catalog.NewLoader(cfg, log), cfg.Sources)
			cat, err := handle.Reload(ctx)
			if err != nil {
				return err
			}
			if err := reportFailures(cmd.ErrOrStderr(), cat); err != nil {
				// Keep serving: the API reports the catalog as unavailable
				// and a reload may fix it.
				printWarning(cmd.ErrOrStderr(), "%s", err.Error())
			}

			server := web.NewServer(handle, cfg.HTTPCORSOrigins, log)
			refresher := listener.NewService(handle, time.Duration(cfg.ReloadIntervalSec)*time.Second, log)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return refresher.Run(gctx) })
			g.Go(func() error { return server.Run(gctx, addr) })
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default HTTP_ADDR)")

	return cmd
}
