// Package mcpserver exposes the recommendation engine, the model catalog
// and the calculators as Model Context Protocol tools over stdio.
package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pricingexcellence/pricing/internal/catalog"
	"github.com/pricingexcellence/pricing/internal/recommend"
	"github.com/pricingexcellence/pricing/internal/webapi"
)

const serverName = "pricing"

const instructions = `Pricing model advisor for consulting engagements.

Start with recommend_pricing_model when all eight engagement answers are known,
or shortlist_pricing_models for a quick three-answer shortlist. Use
get_pricing_model to explain a model, and the calculate_* tools to size fees.`

// Tool is one MCP tool: its definition and the handler serving it.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Tools returns every tool backed by cat and engine, in listing order.
func Tools(cat *catalog.Catalog, engine *recommend.Engine) []Tool {
	return []Tool{
		&RecommendTool{engine: engine},
		&ShortlistTool{store: cat},
		&ListModelsTool{catalog: cat},
		&GetModelTool{catalog: cat},
		&OutcomeFeeTool{},
		&ROITool{},
		&ROITemplatesTool{},
	}
}

// NewServer creates an MCP server with every tool registered.
func NewServer(cat *catalog.Catalog, engine *recommend.Engine, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	s := server.NewMCPServer(
		serverName,
		webapi.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
		server.WithToolHandlerMiddleware(logCalls(logger)),
	)
	for _, t := range Tools(cat, engine) {
		s.AddTool(t.Definition(), t.Handle)
	}
	return s
}

// ServeStdio runs s on r and w until ctx is cancelled or r is exhausted.
func ServeStdio(ctx context.Context, s *server.MCPServer, r io.Reader, w io.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	logger.Debug("mcp server listening on stdio")
	return stdio.Listen(ctx, r, w)
}

func logCalls(logger *slog.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			res, err := next(ctx, req)
			logger.Debug("mcp tool call",
				"tool", req.Params.Name,
				"duration", time.Since(start),
				"is_error", res != nil && res.IsError,
				"error", err,
			)
			return res, err
		}
	}
}
