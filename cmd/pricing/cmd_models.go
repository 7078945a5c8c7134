package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pricingexcellence/pricing/internal/catalog"
	"github.com/pricingexcellence/pricing/internal/models"
	"github.com/pricingexcellence/pricing/internal/render"
	"github.com/pricingexcellence/pricing/internal/webapi"
	"github.com/spf13/cobra"
)

func newModelsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Browse and validate the pricing model catalog",
	}
	cmd.AddCommand(newModelsListCommand(a))
	cmd.AddCommand(newModelsShowCommand(a))
	cmd.AddCommand(newModelsValidateCommand())
	return cmd
}

func newModelsListCommand(a *app) *cobra.Command {
	var (
		risk, industry, calcType string
		hasCalculator            bool
		format                   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pricing models, optionally filtered",
		Example: `  pricing models list --risk low
  pricing models list --industry mid-market --calculator`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(format, formatTable, formatTable, formatJSON, formatMarkdown)
			if err != nil {
				return err
			}
			cr := catalog.Criteria{
				RiskLevel:  models.Level(risk),
				Industry:   models.Industry(industry),
				Calculator: models.CalculatorType(calcType),
			}
			if cmd.Flags().Changed("calculator") {
				cr.HasCalculator = &hasCalculator
			}
			if err := cr.Validate(); err != nil {
				return err
			}

			c, err := a.Catalog()
			if err != nil {
				return err
			}
			ms := c.Filter(cr)

			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				if ms == nil {
					ms = []models.PricingModel{}
				}
				return writeJSON(out, webapi.ModelsResponse{Count: len(ms), Models: ms})
			case formatMarkdown:
				md, err := render.CatalogMarkdown(ms)
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, md)
				return err
			default:
				if len(ms) == 0 {
					fmt.Fprintln(out, "No pricing models match these filters.") //nolint:errcheck
					return nil
				}
				printModels(out, ms)
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&risk, "risk", "", "Only models with this risk level (low|medium|high)")
	cmd.Flags().StringVar(&industry, "industry", "", "Only models sold into this industry")
	cmd.Flags().BoolVar(&hasCalculator, "calculator", false, "Only models with (true) or without (false) a fee calculator")
	cmd.Flags().StringVar(&calcType, "calculator-type", "", "Only models using this calculator")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json or markdown")
	return cmd
}

func printModels(w io.Writer, ms []models.PricingModel) {
	t := &table{
		header: []string{"ID", "TITLE", "RISK", "REWARD", "COMPLEXITY", "CALCULATOR"},
		style: func(row, col int, _ string) *color.Color {
			if col == 2 {
				return levelColor(ms[row].RiskLevel)
			}
			return nil
		},
	}
	for _, m := range ms {
		calc := "-"
		if m.HasCalculator {
			calc = string(m.CalculatorType)
		}
		t.add(m.ID, truncate(m.Title, 40), string(m.RiskLevel), string(m.RewardLevel), string(m.ComplexityLevel), calc)
	}
	t.write(w)
}

func newModelsShowCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one pricing model in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(format, formatMarkdown, formatMarkdown, formatJSON)
			if err != nil {
				return err
			}
			c, err := a.Catalog()
			if err != nil {
				return err
			}
			m, err := c.Lookup(args[0])
			if err != nil {
				return err
			}

			if format == formatJSON {
				related, err := c.Related(m.ID)
				if err != nil {
					return err
				}
				refs := make([]webapi.ModelRef, 0, len(related))
				for _, r := range related {
					refs = append(refs, webapi.ToRef(r))
				}
				return writeJSON(cmd.OutOrStdout(), webapi.ModelDetail{PricingModel: m, Related: refs})
			}

			md, err := render.ModelMarkdown(m)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), md)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: markdown or json")
	return cmd
}

func newModelsValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Validate a catalog file against the catalog schema",
		Long: `Validate a catalog file: schema, unique ids and aliases, and related
model references. Use it before pointing catalog.path in .pricing.yaml at
a custom catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			green := color.New(color.FgGreen)
			green.Fprintf(cmd.OutOrStdout(), "✓ %s: %d models valid\n", args[0], c.Len()) //nolint:errcheck

			var noCalc []string
			for _, m := range c.All() {
				if !m.HasCalculator {
					noCalc = append(noCalc, m.ID)
				}
			}
			if len(noCalc) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  without calculator: %s\n", strings.Join(noCalc, ", ")) //nolint:errcheck
			}
			return nil
		},
	}
}
