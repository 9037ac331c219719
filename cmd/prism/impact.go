package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/halcyonlabs/prism/internal/output"
	"github.com/halcyonlabs/prism/internal/service/analysis"
)

var impactCmd = &cobra.Command{
	Use:   "impact <symbol-id> [path...]",
	Short: "Show every symbol affected by changing one symbol",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImpact,
}

func init() {
	rootCmd.AddCommand(impactCmd)
}

func runImpact(cmd *cobra.Command, args []string) error {
	target := args[0]

	scanSvc, svc := services()
	scanResult, err := scanSvc.ScanPaths(getPaths(args[1:]))
	if err != nil {
		return err
	}
	if len(scanResult.Files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	impact, err := svc.Impact(cmd.Context(), scanResult.Files, target, analysis.Options{})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(getFormat(cmd)), getOutputFile(cmd), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(impact)
	}

	fmt.Fprintf(formatter.Writer(), "Impact of %s: %d dependent symbol(s)\n\n", impact.Target, impact.Count)

	fmt.Fprintln(formatter.Writer(), "Direct dependents:")
	if len(impact.Direct) == 0 {
		fmt.Fprintln(formatter.Writer(), "  (none)")
	}
	for _, id := range impact.Direct {
		fmt.Fprintf(formatter.Writer(), "  %s\n", id)
	}

	fmt.Fprintln(formatter.Writer(), "\nAll dependents:")
	if len(impact.All) == 0 {
		fmt.Fprintln(formatter.Writer(), "  (none)")
	}
	for _, id := range impact.All {
		fmt.Fprintf(formatter.Writer(), "  %s\n", id)
	}
	return nil
}
