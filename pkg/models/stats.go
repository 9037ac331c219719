package models

import "math"

// ProjectStatistics summarizes one project analysis.
type ProjectStatistics struct {
	TotalFiles     int            `json:"total_files" toon:"total_files"`
	TotalSymbols   int            `json:"total_symbols" toon:"total_symbols"`
	TotalImports   int            `json:"total_imports" toon:"total_imports"`
	TotalEdges     int            `json:"total_edges" toon:"total_edges"`
	SymbolsPerFile map[string]int `json:"symbols_per_file" toon:"symbols_per_file"`
}

// Diagnostic is an error reported by the underlying checker for one file.
type Diagnostic struct {
	Path    string `json:"path" toon:"path"`
	Message string `json:"message" toon:"message"`
	Line    uint32 `json:"line,omitempty" toon:"line,omitempty"`
}

// ShakeStatistics summarizes a tree-shaking run.
type ShakeStatistics struct {
	TotalSymbols    int     `json:"total_symbols" toon:"total_symbols"`
	IncludedSymbols int     `json:"included_symbols" toon:"included_symbols"`
	UnusedSymbols   int     `json:"unused_symbols" toon:"unused_symbols"`
	RemovalRate     float64 `json:"removal_rate" toon:"removal_rate"`
}

// NewShakeStatistics computes the unused partition statistics. The removal
// rate is a percentage rounded to two decimals, 0 when total is 0.
func NewShakeStatistics(total, included int) ShakeStatistics {
	unused := total - included
	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(unused)/float64(total)*100*100) / 100
	}
	return ShakeStatistics{
		TotalSymbols:    total,
		IncludedSymbols: included,
		UnusedSymbols:   unused,
		RemovalRate:     rate,
	}
}

// FileShakeSummary is the per-file breakdown in shake reports.
type FileShakeSummary struct {
	TotalSymbols    int     `json:"totalSymbols" toon:"totalSymbols"`
	IncludedSymbols int     `json:"includedSymbols" toon:"includedSymbols"`
	UnusedSymbols   int     `json:"unusedSymbols" toon:"unusedSymbols"`
	RemovalRate     float64 `json:"removalRate" toon:"removalRate"`
}
