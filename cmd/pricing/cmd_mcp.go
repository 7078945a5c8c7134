package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pricingexcellence/pricing/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol server on stdio",
		Long: `Run a Model Context Protocol server over stdin/stdout so assistants can
recommend pricing models, browse the catalog and run the calculators.

Tools:
  recommend_pricing_model   rank models from the eight engagement answers
  shortlist_pricing_models  quick shortlist from three answers
  list_pricing_models       list catalog models with optional filters
  get_pricing_model         one model in full
  calculate_outcome_fee     outcome-based fee
  calculate_roi             Total Economic Impact
  list_roi_templates        TEI templates

Logs go to stderr.`,
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

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := slog.Default()
			s := mcpserver.NewServer(c, engine, logger)
			return mcpserver.ServeStdio(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		},
	}
}
