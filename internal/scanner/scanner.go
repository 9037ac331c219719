package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/halcyonlabs/prism/pkg/ast/treesitter"
	"github.com/halcyonlabs/prism/pkg/config"
)

// Scanner finds analyzable source files in a directory tree.
type Scanner struct {
	config *config.Config
}

// NewScanner creates a new file scanner.
func NewScanner(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// ScanDir walks root and returns every TypeScript/JavaScript source file
// that survives the exclusion rules, in walk order.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if s.isSourceFile(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if s.excludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.isSourceFile(path) && !s.excludedFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *Scanner) isSourceFile(path string) bool {
	return treesitter.DetectLanguage(path) != treesitter.LangUnknown
}

func (s *Scanner) excludedDir(name string) bool {
	for _, dir := range s.config.Exclude.Dirs {
		if name == dir {
			return true
		}
	}
	return false
}

func (s *Scanner) excludedFile(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range s.config.Exclude.Patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	for _, ext := range s.config.Exclude.Extensions {
		if strings.HasSuffix(base, ext) {
			return true
		}
	}
	if s.config.Analysis.MaxFileSize > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > s.config.Analysis.MaxFileSize {
			return true
		}
	}
	return false
}
