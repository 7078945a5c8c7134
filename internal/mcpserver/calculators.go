package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pricingexcellence/pricing/internal/calculator"
	"github.com/pricingexcellence/pricing/internal/render"
)

// OutcomeFeeTool sizes an outcome-based fee.
type OutcomeFeeTool struct{}

func (t *OutcomeFeeTool) Definition() mcp.Tool {
	def := calculator.DefaultOutcomeInput()
	return mcp.NewTool("calculate_outcome_fee",
		mcp.WithDescription("Calculate an outcome-based fee: savings = baseline x achievement, "+
			"fee = savings x risk multiplier. Omitted inputs use the calculator defaults."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithNumber("baseline",
			mcp.Description("Annual baseline value being improved, in dollars."),
			mcp.Min(0),
			mcp.DefaultNumber(def.Baseline),
		),
		mcp.WithNumber("achievementPct",
			mcp.Description("Achieved improvement in percent of the baseline target."),
			mcp.Min(0),
			mcp.DefaultNumber(def.AchievementPct),
		),
		mcp.WithNumber("riskMultiplier",
			mcp.Description("Premium for the provider's risk: 1.2 low, 1.5 medium, 2.0 high."),
			mcp.Min(calculator.MinRiskMultiplier),
			mcp.Max(calculator.MaxRiskMultiplier),
			mcp.DefaultNumber(def.RiskMultiplier),
		),
		withFormat(),
	)
}

func (t *OutcomeFeeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := formatArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := calculator.DefaultOutcomeInput()
	if err := decodeArgs(req.GetArguments(), &in, "format"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := calculator.OutcomeFee(in)
	if err != nil {
		return inputError(err)
	}
	if format == formatMarkdown {
		md, err := render.OutcomeMarkdown(res)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(md), nil
	}
	return jsonResult(res)
}

var roiArgs = []struct {
	name, description string
	max               float64
}{
	{"laborSavings", "Annual labor savings in dollars.", 0},
	{"revenueIncrease", "Annual revenue increase in dollars.", 0},
	{"costAvoidance", "Annual cost avoidance in dollars.", 0},
	{"decisionQuality", "Annual value of better decisions in dollars.", 0},
	{"timeToMarket", "Annual value of faster time to market in dollars.", 0},
	{"employeeExperience", "Annual value of improved employee experience in dollars.", 0},
	{"complianceProbability", "Probability of a compliance incident, in percent.", 100},
	{"complianceValue", "Cost of a compliance incident in dollars.", 0},
	{"securityProbability", "Probability of a security incident, in percent.", 100},
	{"securityValue", "Cost of a security incident in dollars.", 0},
	{"futureCapabilities", "Value of future capabilities enabled, in dollars.", 0},
	{"competitiveMoat", "Value of competitive differentiation, in dollars.", 0},
}

// ROITool runs the Total Economic Impact model.
type ROITool struct{}

func (t *ROITool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Calculate Total Economic Impact: total value, value-based fee, client ROI, " +
			"payback period and a 36 month timeline. Start from a template and override any input."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("template",
			mcp.Description("Pre-filled inputs to start from."),
			mcp.Enum(calculator.TemplateKeys()...),
		),
	}
	for _, a := range roiArgs {
		popts := []mcp.PropertyOption{mcp.Description(a.description), mcp.Min(0)}
		if a.max > 0 {
			popts = append(popts, mcp.Max(a.max))
		}
		opts = append(opts, mcp.WithNumber(a.name, popts...))
	}
	opts = append(opts,
		mcp.WithNumber("feePercentage",
			mcp.Description("Fee as a percentage of total value."),
			mcp.Min(calculator.MinFeePercentage),
			mcp.Max(calculator.MaxFeePercentage),
			mcp.DefaultNumber(calculator.DefaultFeePercentage),
		),
		withFormat(),
	)
	return mcp.NewTool("calculate_roi", opts...)
}

func (t *ROITool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := formatArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := calculator.DefaultROIInput()
	if key := req.GetString("template", ""); key != "" {
		tmpl, err := calculator.Template(key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in = tmpl.Inputs
	}
	if err := decodeArgs(req.GetArguments(), &in, "format", "template"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := calculator.ROI(in)
	if err != nil {
		return inputError(err)
	}
	if format == formatMarkdown {
		md, err := render.ROIMarkdown(res)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(md), nil
	}
	return jsonResult(res)
}

// ROITemplatesTool lists the TEI templates.
type ROITemplatesTool struct{}

func (t *ROITemplatesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_roi_templates",
		mcp.WithDescription("List the pre-filled Total Economic Impact templates usable with calculate_roi."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (t *ROITemplatesTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(calculator.Templates())
}
