package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/halcyonlabs/prism/internal/output"
	"github.com/halcyonlabs/prism/internal/progress"
	"github.com/halcyonlabs/prism/internal/service/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze [path...]",
	Aliases: []string{"a"},
	Short:   "Extract symbols and build the project dependency graph",
	RunE:    runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("strict", false, "Fail when the program has diagnostics")
	analyzeCmd.Flags().Bool("exported-only", false, "List only exported symbols")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	exportedOnly, _ := cmd.Flags().GetBool("exported-only")

	scanSvc, svc := services()
	scanResult, err := scanSvc.ScanPaths(getPaths(args))
	if err != nil {
		return err
	}
	if len(scanResult.Files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	tracker := progress.NewTracker("Analyzing symbols...", len(scanResult.Files))
	session, err := svc.AnalyzeProject(cmd.Context(), scanResult.Files, analysis.Options{
		Strict:     strict,
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

	result := session.Result
	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(result.Statistics)
	}

	var rows [][]string
	for _, sym := range result.Table.AllSymbols() {
		if exportedOnly && !sym.IsExported {
			continue
		}
		exported := ""
		if sym.IsExported {
			exported = "yes"
		}
		rows = append(rows, []string{
			sym.ID,
			sym.ReportedKind().String(),
			exported,
			fmt.Sprintf("%d", len(sym.Dependencies)),
			fmt.Sprintf("%d", len(sym.Dependents)),
			truncate(sym.TypeText, 48),
		})
	}

	table := output.NewTable(
		"Project Symbols",
		[]string{"Symbol", "Kind", "Exported", "Deps", "Dependents", "Type"},
		rows,
		[]string{
			fmt.Sprintf("%d files", result.Statistics.TotalFiles),
			"", "",
			fmt.Sprintf("%d edges", result.Statistics.TotalEdges),
			fmt.Sprintf("%d symbols", result.Statistics.TotalSymbols),
			"",
		},
		result.Statistics,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	for _, diag := range result.Diagnostics {
		if formatter.Colored() {
			color.Yellow("warning: %s: %s", diag.Path, diag.Message)
		} else {
			fmt.Fprintf(formatter.Writer(), "warning: %s: %s\n", diag.Path, diag.Message)
		}
	}
	return nil
}
