package mcpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pricingexcellence/pricing/internal/calculator"
	"github.com/pricingexcellence/pricing/internal/recommend"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func withFormat() mcp.ToolOption {
	return mcp.WithString("format",
		mcp.Description("Response format: json (default) or markdown."),
		mcp.Enum(formatJSON, formatMarkdown),
	)
}

// decodeArgs decodes tool arguments into out, ignoring the named control
// arguments. Any other argument out has no field for is an error.
func decodeArgs(args map[string]any, out any, control ...string) error {
	rest := maps.Clone(args)
	for _, k := range control {
		delete(rest, k)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(rest); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func formatArg(req mcp.CallToolRequest) (string, error) {
	switch f := req.GetString("format", formatJSON); f {
	case formatJSON, formatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("format: invalid value %q (allowed: json, markdown)", f)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// inputError turns validation failures into a tool error result the
// caller can correct. Other errors are returned as protocol errors.
func inputError(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, recommend.ErrInvalidInput) || errors.Is(err, calculator.ErrInvalidInput) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}
