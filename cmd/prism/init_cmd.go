package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"

	"github.com/halcyonlabs/prism/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new prism configuration file",
	Long: `Creates a prism.toml configuration file in the current directory
with sensible defaults. Use --output to specify a different location.

Examples:
  prism init                      # Creates prism.toml in current directory
  prism init -o .prism/prism.toml # Creates config in .prism directory
  prism init --check prism.toml   # Validate an existing config file`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringP("output", "o", "prism.toml", "Output file path")
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
	initCmd.Flags().String("check", "", "Validate an existing config file instead of writing one")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")
	checkPath, _ := cmd.Flags().GetString("check")

	if checkPath != "" {
		if err := config.Validate(checkPath); err != nil {
			return fmt.Errorf("config %s is invalid: %w", checkPath, err)
		}
		color.Green("%s is valid", checkPath)
		return nil
	}

	if _, err := os.Stat(outputPath); err == nil && !force {
		return fmt.Errorf("config file %q already exists (use --force to overwrite)", outputPath)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	content, err := generateDefaultConfig()
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	color.Green("Created %s", outputPath)
	fmt.Println("Edit this file to customize analysis settings.")
	return nil
}

func generateDefaultConfig() (string, error) {
	cfg := config.DefaultConfig()

	content, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to TOML: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# Prism Configuration\n")
	buf.WriteString("# Documentation: https://github.com/halcyonlabs/prism\n\n")
	buf.Write(content)

	return buf.String(), nil
}
