// Package analysis orchestrates program construction, extraction, and
// graph queries for the CLI and MCP surfaces.
package analysis

import (
	"context"
	"sort"

	"github.com/halcyonlabs/prism/internal/cache"
	"github.com/halcyonlabs/prism/internal/fileproc"
	"github.com/halcyonlabs/prism/pkg/analyzer"
	"github.com/halcyonlabs/prism/pkg/analyzer/project"
	"github.com/halcyonlabs/prism/pkg/analyzer/shake"
	"github.com/halcyonlabs/prism/pkg/ast"
	"github.com/halcyonlabs/prism/pkg/ast/treesitter"
	"github.com/halcyonlabs/prism/pkg/config"
	"github.com/halcyonlabs/prism/pkg/extract"
	"github.com/halcyonlabs/prism/pkg/report"
	"github.com/halcyonlabs/prism/pkg/source"
	"github.com/halcyonlabs/prism/pkg/symtab"
)

// Service orchestrates analysis operations.
type Service struct {
	config *config.Config
	cache  *cache.Cache
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// New creates a new analysis service.
func New(opts ...Option) *Service {
	s := &Service{config: config.LoadOrDefault()}
	for _, opt := range opts {
		opt(s)
	}
	s.cache, _ = cache.New(s.config.Cache.Dir, s.config.Cache.TTL, s.config.Cache.Enabled)
	return s
}

// Cache exposes the report cache.
func (s *Service) Cache() *cache.Cache {
	return s.cache
}

// Session couples an analysis result with the program whose trees it
// references. Close the session once results are no longer used.
type Session struct {
	Result  *project.Result
	Program ast.Program
}

// Close releases the program's parse trees.
func (s *Session) Close() {
	if s.Program != nil {
		s.Program.Close()
	}
}

// Options configures one analysis run.
type Options struct {
	Strict     bool
	OnProgress func()
}

func (s *Service) extractOptions() extract.Options {
	return extract.Options{
		IncludeNodeModules:    s.config.Analysis.IncludeNodeModules,
		IncludeSystemSymbols:  s.config.Analysis.IncludeSystemSymbols,
		FollowTypeOnlyImports: s.config.Analysis.FollowTypeOnlyImports,
	}
}

// AnalyzeProject builds the program and assembles the symbol table.
func (s *Service) AnalyzeProject(ctx context.Context, files []string, opts Options) (*Session, error) {
	prog, err := treesitter.NewProgram(files, source.NewFilesystem(), ast.CompilerOptions{
		StdlibRoot:   s.config.Analysis.StdlibRoot,
		ExternalRoot: s.config.Analysis.ExternalRoot,
	})
	if err != nil {
		return nil, err
	}

	analyzerOpts := []project.Option{project.WithExtractOptions(s.extractOptions())}
	if opts.Strict || s.config.Analysis.Strict {
		analyzerOpts = append(analyzerOpts, project.WithStrict())
	}

	if opts.OnProgress != nil {
		tracker := analyzer.NewTracker(func(_, _ int, _ string) { opts.OnProgress() })
		ctx = analyzer.WithTracker(ctx, tracker)
	}

	result, err := project.New(analyzerOpts...).Analyze(ctx, prog)
	if err != nil {
		prog.Close()
		return nil, err
	}

	return &Session{Result: result, Program: prog}, nil
}

// Shake analyzes the project and computes the closure partition from the
// given entry points; config entry points apply when none are passed.
func (s *Service) Shake(ctx context.Context, files, entries []string, opts Options) (*shake.Result, *Session, error) {
	if len(entries) == 0 {
		entries = s.config.Shake.EntryPoints
	}

	session, err := s.AnalyzeProject(ctx, files, opts)
	if err != nil {
		return nil, nil, err
	}
	return shake.Shake(session.Result, entries), session, nil
}

// Cycles analyzes the project and enumerates dependency cycles together
// with the structural graph summary.
func (s *Service) Cycles(ctx context.Context, files []string, opts Options) ([][]string, symtab.GraphSummary, error) {
	session, err := s.AnalyzeProject(ctx, files, opts)
	if err != nil {
		return nil, symtab.GraphSummary{}, err
	}
	defer session.Close()

	cycles, err := report.FindCircularDependencies(ctx, session.Result.Table)
	if err != nil {
		return nil, symtab.GraphSummary{}, err
	}
	return cycles, session.Result.Table.Summary(), nil
}

// Impact analyzes the project and reports the reverse closure of id.
func (s *Service) Impact(ctx context.Context, files []string, id string, opts Options) (report.Impact, error) {
	session, err := s.AnalyzeProject(ctx, files, opts)
	if err != nil {
		return report.Impact{}, err
	}
	defer session.Close()

	return report.ImpactAnalysis(session.Result.Table, id), nil
}

// Largest analyzes the project and ranks symbols by dependency count.
func (s *Service) Largest(ctx context.Context, files []string, k int, opts Options) ([]report.RankedSymbol, error) {
	session, err := s.AnalyzeProject(ctx, files, opts)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	return report.FindLargestSymbols(session.Result.Table, k), nil
}

// Fingerprint derives a cache key from the content hashes of files plus
// any extra discriminator parts (entry points, formats). Hashing runs in
// parallel; unreadable files drop out of the fingerprint the same way
// they drop out of analysis.
func (s *Service) Fingerprint(files []string, extra ...string) string {
	hashes := fileproc.ForEachFile(files, cache.HashFile)
	sort.Strings(hashes)
	return cache.QueryKey(append(hashes, extra...)...)
}
