package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pricingexcellence/pricing/internal/webserver"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		host      string
		port      int
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pricing model site and JSON API",
		Long: `Serve the pricing model pages and the JSON API over HTTP.

Pages:
  /                    pricing model catalog
  /models/{id}         one pricing model

API:
  GET  /api/questions
  POST /api/recommendations
  POST /api/shortlist
  GET  /api/models, /api/models/{id}
  POST /api/calculators/outcome-fee, /api/calculators/roi
  GET  /api/calculators/roi/templates

Port, allowed CORS origins and the API rate limit default to the values in
.pricing.yaml. The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.Catalog()
			if err != nil {
				return err
			}
			engine, err := a.Engine()
			if err != nil {
				return err
			}

			sc := a.cfg.Server
			if !cmd.Flags().Changed("port") {
				port = sc.Port
			}
			if !cmd.Flags().Changed("no-browser") && sc.NoBrowser != nil {
				noBrowser = *sc.NoBrowser
			}

			srv, err := webserver.New(webserver.Config{
				Host:           host,
				Port:           port,
				NoBrowser:      noBrowser,
				Logger:         slog.Default(),
				Catalog:        c,
				Engine:         engine,
				AllowedOrigins: sc.AllowedOrigins,
				RateLimit:      sc.RateLimit,
				RateBurst:      sc.RateBurst,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.ListenAndServe(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				if ctx.Err() != nil {
					slog.Info("received shutdown signal")
				}
				return nil
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Interface to listen on")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config, 3000)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open a browser")
	return cmd
}
