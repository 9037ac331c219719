package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/halcyonlabs/prism/internal/service/analysis"
	scannerSvc "github.com/halcyonlabs/prism/internal/service/scanner"
	"github.com/halcyonlabs/prism/pkg/models"
)

// AnalyzeInput is the base input for all tools.
type AnalyzeInput struct {
	Paths []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
}

// TreeShakeInput adds entry points for closure computation.
type TreeShakeInput struct {
	AnalyzeInput
	EntryPoints []string `json:"entry_points" jsonschema:"Entry point symbol ids of the form file_key:name."`
}

// ImpactInput names the symbol whose dependents are wanted.
type ImpactInput struct {
	AnalyzeInput
	Symbol string `json:"symbol" jsonschema:"Fully qualified symbol id of the form file_key:name."`
}

// LargestInput bounds the ranking size.
type LargestInput struct {
	AnalyzeInput
	Top int `json:"top,omitempty" jsonschema:"Number of symbols to return. Default 20."`
}

func getPaths(input AnalyzeInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

func scanFiles(input AnalyzeInput) ([]string, *mcp.CallToolResult, error) {
	scanResult, err := scannerSvc.New().ScanPaths(getPaths(input))
	if err != nil {
		res, _, err := toolError(err.Error())
		return nil, res, err
	}
	if len(scanResult.Files) == 0 {
		res, _, err := toolError("no source files found")
		return nil, res, err
	}
	return scanResult.Files, nil, nil
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	text, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(text)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// symbolRecord is the per-symbol payload returned by analyze_project.
type symbolRecord struct {
	ID           string `json:"id" toon:"id"`
	Kind         string `json:"kind" toon:"kind"`
	Exported     bool   `json:"exported" toon:"exported"`
	Dependencies int    `json:"dependencies" toon:"dependencies"`
	Dependents   int    `json:"dependents" toon:"dependents"`
}

func handleAnalyzeProject(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	files, errRes, err := scanFiles(input)
	if errRes != nil || err != nil {
		return errRes, nil, err
	}

	session, err := analysis.New().AnalyzeProject(ctx, files, analysis.Options{})
	if err != nil {
		return toolError(err.Error())
	}
	defer session.Close()

	table := session.Result.Table
	symbols := make([]symbolRecord, 0, table.SymbolCount())
	for _, sym := range table.AllSymbols() {
		symbols = append(symbols, symbolRecord{
			ID:           sym.ID,
			Kind:         sym.ReportedKind().String(),
			Exported:     sym.IsExported,
			Dependencies: len(sym.Dependencies),
			Dependents:   len(sym.Dependents),
		})
	}

	return toolResult(struct {
		Statistics models.ProjectStatistics `json:"statistics" toon:"statistics"`
		Symbols    []symbolRecord           `json:"symbols" toon:"symbols"`
	}{session.Result.Statistics, symbols})
}

func handleTreeShake(ctx context.Context, req *mcp.CallToolRequest, input TreeShakeInput) (*mcp.CallToolResult, any, error) {
	if len(input.EntryPoints) == 0 {
		return toolError("entry_points is required")
	}

	files, errRes, err := scanFiles(input.AnalyzeInput)
	if errRes != nil || err != nil {
		return errRes, nil, err
	}

	result, session, err := analysis.New().Shake(ctx, files, input.EntryPoints, analysis.Options{})
	if err != nil {
		return toolError(err.Error())
	}
	defer session.Close()

	return toolResult(struct {
		EntryPoints    []string               `json:"entry_points" toon:"entry_points"`
		Statistics     models.ShakeStatistics `json:"statistics" toon:"statistics"`
		Included       []string               `json:"included" toon:"included"`
		Unused         []string               `json:"unused" toon:"unused"`
		MissingEntries []string               `json:"missing_entries,omitempty" toon:"missing_entries,omitempty"`
	}{result.EntryPoints, result.Statistics, result.IncludedList(), result.Unused, result.MissingEntries})
}

func handleFindCycles(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	files, errRes, err := scanFiles(input)
	if errRes != nil || err != nil {
		return errRes, nil, err
	}

	cycles, summary, err := analysis.New().Cycles(ctx, files, analysis.Options{})
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(struct {
		CycleCount int        `json:"cycle_count" toon:"cycle_count"`
		Cycles     [][]string `json:"cycles" toon:"cycles"`
		Summary    any        `json:"summary" toon:"summary"`
	}{len(cycles), cycles, summary})
}

func handleImpactAnalysis(ctx context.Context, req *mcp.CallToolRequest, input ImpactInput) (*mcp.CallToolResult, any, error) {
	if input.Symbol == "" {
		return toolError("symbol is required")
	}

	files, errRes, err := scanFiles(input.AnalyzeInput)
	if errRes != nil || err != nil {
		return errRes, nil, err
	}

	impact, err := analysis.New().Impact(ctx, files, input.Symbol, analysis.Options{})
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(impact)
}

func handleLargestSymbols(ctx context.Context, req *mcp.CallToolRequest, input LargestInput) (*mcp.CallToolResult, any, error) {
	files, errRes, err := scanFiles(input.AnalyzeInput)
	if errRes != nil || err != nil {
		return errRes, nil, err
	}

	top := input.Top
	if top <= 0 {
		top = 20
	}

	ranked, err := analysis.New().Largest(ctx, files, top, analysis.Options{})
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(ranked)
}
