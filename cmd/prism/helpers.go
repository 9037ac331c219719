package main

import (
	"github.com/halcyonlabs/prism/internal/service/analysis"
	scannerSvc "github.com/halcyonlabs/prism/internal/service/scanner"
	"github.com/halcyonlabs/prism/pkg/config"
	"github.com/spf13/cobra"
)

// getPaths returns paths from args, defaulting to ["."]
func getPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// getFormat returns the format flag value from the command.
func getFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("format")
	return format
}

// getOutputFile returns the output file path from the command.
func getOutputFile(cmd *cobra.Command) string {
	outputFile, _ := cmd.Flags().GetString("output")
	return outputFile
}

// loadConfig honors --config when set and falls back to discovery.
func loadConfig() *config.Config {
	if cfgFile != "" {
		if cfg, err := config.Load(cfgFile); err == nil {
			return cfg
		}
	}
	return config.LoadOrDefault()
}

// services builds the scanner and analysis services from the active config.
func services() (*scannerSvc.Service, *analysis.Service) {
	cfg := loadConfig()
	return scannerSvc.New(scannerSvc.WithConfig(cfg)), analysis.New(analysis.WithConfig(cfg))
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
