package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/halcyonlabs/prism/internal/output"
	"github.com/halcyonlabs/prism/internal/service/analysis"
)

var largestCmd = &cobra.Command{
	Use:   "largest [path...]",
	Short: "Rank symbols by dependency count",
	RunE:  runLargest,
}

func init() {
	largestCmd.Flags().IntP("top", "n", 20, "Number of symbols to show")

	rootCmd.AddCommand(largestCmd)
}

func runLargest(cmd *cobra.Command, args []string) error {
	top, _ := cmd.Flags().GetInt("top")

	scanSvc, svc := services()
	scanResult, err := scanSvc.ScanPaths(getPaths(args))
	if err != nil {
		return err
	}
	if len(scanResult.Files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	ranked, err := svc.Largest(cmd.Context(), scanResult.Files, top, analysis.Options{})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(getFormat(cmd)), getOutputFile(cmd), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(ranked)
	}

	var rows [][]string
	for _, r := range ranked {
		rows = append(rows, []string{r.ID, fmt.Sprintf("%d", r.Dependencies)})
	}
	return formatter.Output(output.NewTable(
		"Most Coupled Symbols",
		[]string{"Symbol", "Dependencies"},
		rows,
		nil,
		ranked,
	))
}
