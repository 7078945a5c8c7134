package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pricingexcellence/pricing/internal/catalog"
	"github.com/pricingexcellence/pricing/internal/models"
	"github.com/pricingexcellence/pricing/internal/render"
	"github.com/pricingexcellence/pricing/internal/webapi"
)

// ListModelsTool lists catalog models, optionally filtered.
type ListModelsTool struct {
	catalog *catalog.Catalog
}

func (t *ListModelsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_pricing_models",
		mcp.WithDescription("List the pricing models in the catalog. All filters are optional and combine with AND."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("riskLevel",
			mcp.Description("Only models with this risk level."),
			mcp.Enum(string(models.LevelLow), string(models.LevelMedium), string(models.LevelHigh)),
		),
		mcp.WithString("industry",
			mcp.Description("Only models commonly sold into this industry."),
			mcp.Enum(
				string(models.IndustryPublicSector),
				string(models.IndustryRetailCPG),
				string(models.IndustryLifeSciences),
				string(models.IndustryFinancialServices),
				string(models.IndustryMidMarket),
			),
		),
		mcp.WithBoolean("hasCalculator",
			mcp.Description("Only models with (true) or without (false) a fee calculator."),
		),
		mcp.WithString("calculatorType",
			mcp.Description("Only models using this calculator."),
			mcp.Enum(
				string(models.CalculatorOutcomeBased),
				string(models.CalculatorValueBased),
				string(models.CalculatorTiered),
				string(models.CalculatorConsumption),
				string(models.CalculatorPlatform),
				string(models.CalculatorGeneric),
			),
		),
		withFormat(),
	)
}

func (t *ListModelsTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := formatArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var cr catalog.Criteria
	if err := decodeArgs(req.GetArguments(), &cr, "format"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := cr.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms := t.catalog.Filter(cr)
	if format == formatMarkdown {
		if len(ms) == 0 {
			return mcp.NewToolResultText("No pricing models match these filters."), nil
		}
		md, err := render.CatalogMarkdown(ms)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(md), nil
	}
	if ms == nil {
		ms = []models.PricingModel{}
	}
	return jsonResult(webapi.ModelsResponse{Count: len(ms), Models: ms})
}

// GetModelTool returns one model with its related models.
type GetModelTool struct {
	catalog *catalog.Catalog
}

func (t *GetModelTool) Definition() mcp.Tool {
	return mcp.NewTool("get_pricing_model",
		mcp.WithDescription("Get the full description of one pricing model: formula, when to use it, "+
			"applications and related models."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Model id, e.g. outcome-based or value-based-roi."),
		),
		withFormat(),
	)
}

func (t *GetModelTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := formatArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, err := t.catalog.Lookup(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v; use list_pricing_models to see valid ids", err)), nil
	}

	if format == formatMarkdown {
		md, err := render.ModelMarkdown(m)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(md), nil
	}

	related, err := t.catalog.Related(m.ID)
	if err != nil {
		return nil, err
	}
	refs := make([]webapi.ModelRef, 0, len(related))
	for _, r := range related {
		refs = append(refs, webapi.ToRef(r))
	}
	return jsonResult(webapi.ModelDetail{PricingModel: m, Related: refs})
}
