package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/pricingexcellence/pricing/internal/catalog"
	"github.com/pricingexcellence/pricing/internal/projectconfig"
	"github.com/pricingexcellence/pricing/internal/recommend"
	"github.com/spf13/cobra"
)

var version = "dev"

// app carries the state shared by every subcommand. The catalog and engine
// are built on first use so commands that never touch them, or validate a
// different catalog, do not fail on a broken configured one.
type app struct {
	configPath string
	noColor    bool

	cfg     *projectconfig.ProjectConfig
	catalog *catalog.Catalog
	engine  *recommend.Engine
}

func (a *app) loadConfig() error {
	var (
		cfg *projectconfig.ProjectConfig
		err error
	)
	if a.configPath != "" {
		cfg, err = projectconfig.LoadFile(a.configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, err = projectconfig.Load(wd)
		}
	}
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// Catalog returns the configured catalog, or the embedded one.
func (a *app) Catalog() (*catalog.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	if p := a.cfg.Catalog.Path; p != "" {
		c, err := catalog.Load(p)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded catalog", "path", p, "models", c.Len())
		a.catalog = c
	} else {
		a.catalog = catalog.Default()
	}
	return a.catalog, nil
}

// Engine returns the recommendation engine bound to the catalog.
func (a *app) Engine() (*recommend.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}
	c, err := a.Catalog()
	if err != nil {
		return nil, err
	}
	e, err := recommend.NewEngine(
		recommend.WithCatalog(c),
		recommend.WithLimit(a.cfg.Recommend.Limit),
	)
	if err != nil {
		return nil, fmt.Errorf("creating recommendation engine: %w", err)
	}
	a.engine = e
	return e, nil
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "pricing",
		Short: "Pricing Excellence - choose and size pricing models for consulting engagements",
		Long: `Pricing Excellence recommends pricing models for consulting engagements.

Answer eight questions about an engagement to get up to three ranked
pricing models with a confidence and rationale, browse the model catalog,
and size fees with the outcome-based and Total Economic Impact calculators.

The same features are available as a web site and JSON API (pricing serve)
and as Model Context Protocol tools (pricing mcp).`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a "+projectconfig.FileName+" file (default: search upwards from the working directory)")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		if err := a.loadConfig(); err != nil {
			return err
		}
		if a.noColor || (a.cfg.Output.Color != nil && !*a.cfg.Output.Color) {
			color.NoColor = true
		}
		return nil
	}

	cmd.AddCommand(newRecommendCommand(a))
	cmd.AddCommand(newQuestionsCommand(a))
	cmd.AddCommand(newShortlistCommand(a))
	cmd.AddCommand(newModelsCommand(a))
	cmd.AddCommand(newCalcCommand(a))
	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newMCPCommand(a))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
