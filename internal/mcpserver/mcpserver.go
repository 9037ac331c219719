// Package mcpserver exposes the analyzer over the Model Context Protocol
// so agents can query symbol graphs without shelling out to the CLI.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all prism analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all prism tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "prism",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds all analyzer tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_project",
		Description: describeAnalyzeProject(),
	}, handleAnalyzeProject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "tree_shake",
		Description: describeTreeShake(),
	}, handleTreeShake)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_cycles",
		Description: describeFindCycles(),
	}, handleFindCycles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "impact_analysis",
		Description: describeImpactAnalysis(),
	}, handleImpactAnalysis)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "largest_symbols",
		Description: describeLargestSymbols(),
	}, handleLargestSymbols)
}
