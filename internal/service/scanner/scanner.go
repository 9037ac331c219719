// Package scanner resolves CLI path arguments to source file lists.
package scanner

import (
	"fmt"
	"path/filepath"

	"github.com/halcyonlabs/prism/internal/scanner"
	"github.com/halcyonlabs/prism/pkg/config"
)

// ScanResult contains the result of a file scan.
type ScanResult struct {
	Files []string
}

// PathError reports an unusable input path.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Service provides file scanning functionality.
type Service struct {
	config *config.Config
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// New creates a new scanner service.
func New(opts ...Option) *Service {
	s := &Service{config: config.LoadOrDefault()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanPaths scans multiple paths and returns all found source files.
func (s *Service) ScanPaths(paths []string) (*ScanResult, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	scan := scanner.NewScanner(s.config)
	var files []string

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, &PathError{Path: path, Err: err}
		}
		found, err := scan.ScanDir(absPath)
		if err != nil {
			return nil, &PathError{Path: path, Err: err}
		}
		files = append(files, found...)
	}

	return &ScanResult{Files: files}, nil
}
