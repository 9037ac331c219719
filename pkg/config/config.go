package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for prism.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// Shake settings
	Shake ShakeConfig `koanf:"shake"`

	// Report settings
	Report ReportConfig `koanf:"report"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls reference resolution policy.
type AnalysisConfig struct {
	IncludeNodeModules    bool   `koanf:"include_node_modules"`
	IncludeSystemSymbols  bool   `koanf:"include_system_symbols"`
	FollowTypeOnlyImports bool   `koanf:"follow_type_only_imports"`
	Strict                bool   `koanf:"strict"`
	MaxFileSize           int64  `koanf:"max_file_size"`
	StdlibRoot            string `koanf:"stdlib_root"`
	ExternalRoot          string `koanf:"external_root"`
}

// ShakeConfig holds default entry points for tree shaking.
type ShakeConfig struct {
	EntryPoints []string `koanf:"entry_points"`
}

// ReportConfig controls graph rendering bounds.
type ReportConfig struct {
	MaxNodes     int  `koanf:"max_nodes"`
	IncludedOnly bool `koanf:"included_only"`
	WithLocation bool `koanf:"with_location"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			IncludeNodeModules:    false,
			IncludeSystemSymbols:  false,
			FollowTypeOnlyImports: false,
			Strict:                false,
			MaxFileSize:           0,
			ExternalRoot:          "node_modules",
		},
		Report: ReportConfig{
			MaxNodes: 100,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.test.ts",
				"*.test.tsx",
				"*.spec.ts",
				"*.min.js",
			},
			Extensions: []string{
				".lock",
				".map",
			},
			Dirs: []string{
				"node_modules",
				".git",
				".prism",
				"dist",
				"build",
				"coverage",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".prism/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"prism.toml",
		"prism.yaml",
		"prism.yml",
		"prism.json",
		".prism.toml",
		".prism.yaml",
		".prism.yml",
		".prism.json",
	}

	searchDirs := []string{".", ".prism"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}
