package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pricingexcellence/pricing/internal/recommend"
	"github.com/pricingexcellence/pricing/internal/render"
	"github.com/pricingexcellence/pricing/internal/webapi"
)

// answerArgs declares one required enum argument per question.
func answerArgs(fields ...recommend.Field) []mcp.ToolOption {
	opts := make([]mcp.ToolOption, 0, len(fields))
	for _, f := range fields {
		q, _ := recommend.QuestionFor(f)
		opts = append(opts, mcp.WithString(string(f),
			mcp.Required(),
			mcp.Description(describe(q)),
			mcp.Enum(f.Allowed()...),
		))
	}
	return opts
}

func describe(q recommend.Question) string {
	var b strings.Builder
	b.WriteString(q.Text)
	for _, o := range q.Options {
		fmt.Fprintf(&b, "\n- %s: %s", o.Value, o.Label)
	}
	return b.String()
}

// RecommendTool ranks pricing models for a complete engagement profile.
type RecommendTool struct {
	engine *recommend.Engine
}

func (t *RecommendTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Recommend up to three pricing models for a consulting engagement, " +
			"ranked by confidence, from the eight engagement answers."),
		mcp.WithReadOnlyHintAnnotation(true),
	}
	opts = append(opts, answerArgs(recommend.Fields()...)...)
	opts = append(opts, withFormat())
	return mcp.NewTool("recommend_pricing_model", opts...)
}

func (t *RecommendTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := formatArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var values map[string]string
	if err := decodeArgs(req.GetArguments(), &values, "format"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answers, err := recommend.ParseAnswers(values)
	if err != nil {
		return inputError(err)
	}

	recs, err := t.engine.Recommend(answers)
	if err != nil {
		return inputError(err)
	}

	if format == formatMarkdown {
		md, err := render.RecommendationsMarkdown(recs)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(md), nil
	}
	return jsonResult(webapi.RecommendationsResponse{Answers: answers, Recommendations: recs})
}

// ShortlistTool returns the quick playbook shortlist for three answers.
type ShortlistTool struct {
	store webapi.ModelStore
}

func (t *ShortlistTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Quick, unranked shortlist of pricing models from three answers: " +
			"outcome measurability, client risk tolerance and scope certainty."),
		mcp.WithReadOnlyHintAnnotation(true),
	}
	opts = append(opts, answerArgs(
		recommend.FieldOutcomeMeasurability,
		recommend.FieldClientRiskTolerance,
		recommend.FieldScopeCertainty,
	)...)
	return mcp.NewTool("shortlist_pricing_models", opts...)
}

func (t *ShortlistTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var s recommend.Situation
	if err := decodeArgs(req.GetArguments(), &s); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ids, err := recommend.Shortlist(s)
	if err != nil {
		return inputError(err)
	}
	return jsonResult(webapi.ShortlistResponse{Models: webapi.RefsFor(t.store, ids)})
}
