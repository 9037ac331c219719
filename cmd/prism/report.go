package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/halcyonlabs/prism/internal/output"
	"github.com/halcyonlabs/prism/internal/progress"
	"github.com/halcyonlabs/prism/internal/service/analysis"
	"github.com/halcyonlabs/prism/pkg/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [path...]",
	Short: "Render a tree-shaking report (text, json, markdown, yaml, dot, adjacency)",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringSliceP("entry", "e", nil, "Entry point symbol ids (file_key:name)")
	reportCmd.Flags().Bool("adjacency", false, "Emit the adjacency list instead of the standard report")
	reportCmd.Flags().Bool("with-location", false, "Include file:line in adjacency output")
	reportCmd.Flags().Int("max-nodes", 0, "Cap the number of DOT nodes (default 100)")
	reportCmd.Flags().Bool("included-only", false, "Restrict the DOT graph to the live set")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	entries, _ := cmd.Flags().GetStringSlice("entry")
	adjacency, _ := cmd.Flags().GetBool("adjacency")
	withLocation, _ := cmd.Flags().GetBool("with-location")
	maxNodes, _ := cmd.Flags().GetInt("max-nodes")
	includedOnly, _ := cmd.Flags().GetBool("included-only")

	scanSvc, svc := services()
	scanResult, err := scanSvc.ScanPaths(getPaths(args))
	if err != nil {
		return err
	}
	if len(scanResult.Files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	tracker := progress.NewTracker("Building report...", len(scanResult.Files))
	result, session, err := svc.Shake(cmd.Context(), scanResult.Files, entries, analysis.Options{
		OnProgress: tracker.Tick,
	})
	tracker.FinishSuccess()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	defer session.Close()

	formatter, err := output.NewFormatter(output.ParseFormat(getFormat(cmd)), getOutputFile(cmd), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rep := report.New()
	w := formatter.Writer()

	if adjacency {
		return rep.Adjacency(w, result, report.AdjacencyOptions{WithLocation: withLocation})
	}

	switch formatter.Format() {
	case output.FormatJSON:
		data, err := rep.JSON(result)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case output.FormatYAML:
		data, err := rep.JSON(result)
		if err != nil {
			return err
		}
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return err
		}
		return yaml.NewEncoder(w).Encode(doc)
	case output.FormatMarkdown:
		return rep.Markdown(w, result)
	case output.FormatDOT:
		opts := report.DefaultDOTOptions()
		if maxNodes > 0 {
			opts.MaxNodes = maxNodes
		}
		opts.IncludedOnly = includedOnly
		return rep.DOT(w, result, opts)
	default:
		return rep.Detailed(w, result)
	}
}
