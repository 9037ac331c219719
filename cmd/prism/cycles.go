package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/halcyonlabs/prism/internal/output"
	"github.com/halcyonlabs/prism/internal/service/analysis"
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles [path...]",
	Short: "Enumerate dependency cycles between symbols",
	RunE:  runCycles,
}

func init() {
	cyclesCmd.Flags().Bool("summary", false, "Include structural graph summary")

	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) error {
	withSummary, _ := cmd.Flags().GetBool("summary")

	scanSvc, svc := services()
	scanResult, err := scanSvc.ScanPaths(getPaths(args))
	if err != nil {
		return err
	}
	if len(scanResult.Files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	cycles, summary, err := svc.Cycles(cmd.Context(), scanResult.Files, analysis.Options{})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(getFormat(cmd)), getOutputFile(cmd), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		payload := struct {
			CycleCount int        `json:"cycle_count" toon:"cycle_count"`
			Cycles     [][]string `json:"cycles" toon:"cycles"`
			Summary    any        `json:"summary,omitempty" toon:"summary,omitempty"`
		}{CycleCount: len(cycles), Cycles: cycles}
		if withSummary {
			payload.Summary = summary
		}
		return formatter.Output(payload)
	}

	if len(cycles) == 0 {
		if formatter.Colored() {
			color.Green("No dependency cycles found")
		} else {
			fmt.Fprintln(formatter.Writer(), "No dependency cycles found")
		}
	}

	for i, cycle := range cycles {
		fmt.Fprintf(formatter.Writer(), "cycle %d: %s\n", i+1, strings.Join(cycle, " -> "))
	}

	if withSummary {
		fmt.Fprintf(formatter.Writer(), "\nSymbols: %d  Edges: %d  Components: %d  SCCs in cycles: %d\n",
			summary.TotalSymbols, summary.TotalEdges, summary.Components, summary.StronglyConnectedComponents)
	}
	return nil
}
