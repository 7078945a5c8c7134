package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/pricingexcellence/pricing/internal/calculator"
	"github.com/pricingexcellence/pricing/internal/models"
	"github.com/pricingexcellence/pricing/internal/render"
	"github.com/spf13/cobra"
)

func newCalcCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Size fees with the pricing calculators",
	}
	cmd.AddCommand(newCalcOutcomeCommand(a))
	cmd.AddCommand(newCalcROICommand(a))
	cmd.AddCommand(newCalcTemplatesCommand(a))
	return cmd
}

func newCalcOutcomeCommand(a *app) *cobra.Command {
	in := calculator.DefaultOutcomeInput()
	var format string

	cmd := &cobra.Command{
		Use:   "outcome",
		Short: "Outcome-based fee: savings x risk multiplier",
		Long: `Calculate an outcome-based fee.

  savings = baseline x achievement%
  fee     = savings x risk multiplier

Risk multipliers: 1.2 low, 1.5 medium, 2.0 high.`,
		Example: `  pricing calc outcome --baseline 5000000 --achievement 100 --risk-multiplier 1.5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(format, formatTable, formatTable, formatJSON, formatMarkdown)
			if err != nil {
				return err
			}
			res, err := calculator.OutcomeFee(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				return writeJSON(out, res)
			case formatMarkdown:
				return writeMarkdown(out, render.OutcomeMarkdown, res)
			default:
				printOutcome(out, res)
				return nil
			}
		},
	}

	cmd.Flags().Float64Var(&in.Baseline, "baseline", in.Baseline, "Annual baseline value being improved, in dollars")
	cmd.Flags().Float64Var(&in.AchievementPct, "achievement", in.AchievementPct, "Achieved improvement in percent of the baseline target")
	cmd.Flags().Float64Var(&in.RiskMultiplier, "risk-multiplier", in.RiskMultiplier, "Premium for the provider's risk, between 1 and 2")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json or markdown")
	return cmd
}

func printOutcome(w io.Writer, res models.OutcomeFeeResult) {
	t := &table{header: []string{"", "VALUE"}}
	t.add("Baseline value", render.Currency(res.Baseline))
	t.add("Achievement", render.Percent(res.AchievementPct))
	t.add("Risk multiplier", fmt.Sprintf("%sx (%s risk)", strconv.FormatFloat(res.RiskMultiplier, 'f', -1, 64), res.RiskBand))
	t.add("Client savings", render.Currency(res.Savings))
	t.add("Calculated fee", render.Currency(res.Fee))
	t.add("Client net benefit", render.Currency(res.NetBenefit))
	t.add("Client ROI", render.Multiple(res.ClientROI))
	t.style = func(row, col int, _ string) *color.Color {
		if row == 4 {
			return color.New(color.Bold)
		}
		if row == 5 && col == 1 && res.NetBenefit < 0 {
			return color.New(color.FgRed)
		}
		return nil
	}
	t.write(w)
}

// roiFlag binds one TEI input to a flag.
type roiFlag struct {
	name  string
	field func(*models.ROIInput) *float64
	usage string
}

var roiFlags = []roiFlag{
	{"labor-savings", func(in *models.ROIInput) *float64 { return &in.LaborSavings }, "Annual labor savings"},
	{"revenue-increase", func(in *models.ROIInput) *float64 { return &in.RevenueIncrease }, "Annual revenue increase"},
	{"cost-avoidance", func(in *models.ROIInput) *float64 { return &in.CostAvoidance }, "Annual cost avoidance"},
	{"decision-quality", func(in *models.ROIInput) *float64 { return &in.DecisionQuality }, "Annual value of better decisions"},
	{"time-to-market", func(in *models.ROIInput) *float64 { return &in.TimeToMarket }, "Annual value of faster time to market"},
	{"employee-experience", func(in *models.ROIInput) *float64 { return &in.EmployeeExperience }, "Annual value of employee experience"},
	{"compliance-probability", func(in *models.ROIInput) *float64 { return &in.ComplianceProbability }, "Probability of a compliance incident, percent"},
	{"compliance-value", func(in *models.ROIInput) *float64 { return &in.ComplianceValue }, "Cost of a compliance incident"},
	{"security-probability", func(in *models.ROIInput) *float64 { return &in.SecurityProbability }, "Probability of a security incident, percent"},
	{"security-value", func(in *models.ROIInput) *float64 { return &in.SecurityValue }, "Cost of a security incident"},
	{"future-capabilities", func(in *models.ROIInput) *float64 { return &in.FutureCapabilities }, "Value of future capabilities"},
	{"competitive-moat", func(in *models.ROIInput) *float64 { return &in.CompetitiveMoat }, "Value of competitive differentiation"},
	{"fee-percentage", func(in *models.ROIInput) *float64 { return &in.FeePercentage }, "Fee as a percentage of total value (5-30)"},
}

func newCalcROICommand(a *app) *cobra.Command {
	var (
		template string
		format   string
		flagIn   models.ROIInput
	)

	cmd := &cobra.Command{
		Use:   "roi",
		Short: "Total Economic Impact: value, fee, ROI and payback",
		Long: `Calculate Total Economic Impact (TEI).

Value is the sum of direct and indirect benefits, probability-weighted risk
mitigation and strategic value. The fee is a percentage of that value and
value accrues linearly over 36 months.

Start from a --template and override any input with its flag.`,
		Example: `  pricing calc roi --template supply-chain
  pricing calc roi --template supply-chain --fee-percentage 20 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(format, formatTable, formatTable, formatJSON, formatMarkdown)
			if err != nil {
				return err
			}

			in := calculator.DefaultROIInput()
			if template != "" {
				tmpl, err := calculator.Template(template)
				if err != nil {
					return err
				}
				in = tmpl.Inputs
			}
			for _, f := range roiFlags {
				if cmd.Flags().Changed(f.name) {
					*f.field(&in) = *f.field(&flagIn)
				}
			}

			res, err := calculator.ROI(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				return writeJSON(out, res)
			case formatMarkdown:
				return writeMarkdown(out, render.ROIMarkdown, res)
			default:
				printROI(out, res)
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "Start from a template (see pricing calc templates)")
	for _, f := range roiFlags {
		cmd.Flags().Float64Var(f.field(&flagIn), f.name, 0, f.usage)
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json or markdown")
	return cmd
}

func printROI(w io.Writer, res models.ROIResult) {
	t := &table{header: []string{"", "VALUE"}}
	t.add("Direct benefits", render.Currency(res.DirectBenefits))
	t.add("Indirect benefits", render.Currency(res.IndirectBenefits))
	t.add("Risk mitigation", render.Currency(res.RiskMitigation))
	t.add("Strategic value", render.Currency(res.StrategicValue))
	t.add("Total value", render.Currency(res.TotalValue))
	t.add(fmt.Sprintf("Fee (%s)", render.Percent(res.Input.FeePercentage)), render.Currency(res.Fee))
	t.add("Net benefit", render.Currency(res.NetBenefit))
	t.add("Client ROI", render.Multiple(res.ROI))
	t.add("Payback period", render.Months(res.PaybackMonths))
	t.style = func(row, _ int, _ string) *color.Color {
		if row == 4 || row == 7 {
			return color.New(color.Bold)
		}
		return nil
	}
	t.write(w)
}

func newCalcTemplatesCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the Total Economic Impact templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(format, formatTable, formatTable, formatJSON)
			if err != nil {
				return err
			}
			templates := calculator.Templates()
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), templates)
			}

			t := &table{header: []string{"KEY", "NAME", "TOTAL VALUE"}}
			for _, tmpl := range templates {
				total := "-"
				if res, err := calculator.ROI(tmpl.Inputs); err == nil {
					total = render.Currency(res.TotalValue)
				}
				t.add(tmpl.Key, tmpl.Name, total)
			}
			t.write(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table or json")
	return cmd
}

func writeMarkdown[T any](w io.Writer, fn func(T) (string, error), v T) error {
	md, err := fn(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, md)
	return err
}
