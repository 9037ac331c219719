// Package project drives symbol extraction across a program's source
// files and assembles the project-wide symbol table.
package project

import (
	"context"

	"github.com/halcyonlabs/prism/pkg/analyzer"
	"github.com/halcyonlabs/prism/pkg/ast"
	"github.com/halcyonlabs/prism/pkg/extract"
	"github.com/halcyonlabs/prism/pkg/models"
	"github.com/halcyonlabs/prism/pkg/symtab"
)

// Result is the populated table plus everything reports need alongside it.
type Result struct {
	Table       *symtab.Table
	RootFiles   []string
	Diagnostics []models.Diagnostic
	Statistics  models.ProjectStatistics
}

// Analyzer runs extraction over every file of a program.
type Analyzer struct {
	extractOpts extract.Options
	strict      bool
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithExtractOptions sets the reference-resolution policy.
func WithExtractOptions(opts extract.Options) Option {
	return func(a *Analyzer) {
		a.extractOpts = opts
	}
}

// WithStrict makes non-empty diagnostics fatal.
func WithStrict() Option {
	return func(a *Analyzer) {
		a.strict = true
	}
}

// New creates a project analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var _ analyzer.ProgramAnalyzer[ast.Program, *Result] = (*Analyzer)(nil)

// Analyze extracts every non-declaration file and assembles the table.
// The context is checked between files; on cancellation the partial table
// is discarded and ctx.Err() returned. Files the checker fails on are
// dropped and surface as diagnostics.
func (a *Analyzer) Analyze(ctx context.Context, program ast.Program) (*Result, error) {
	files := program.Files()
	if len(files) == 0 {
		return nil, &InvalidInputError{Reason: "no source files in program"}
	}

	diagnostics := make([]models.Diagnostic, 0, len(program.Diagnostics()))
	for _, d := range program.Diagnostics() {
		diagnostics = append(diagnostics, models.Diagnostic{Path: d.Path, Message: d.Message, Line: d.Line})
	}
	if a.strict && len(diagnostics) > 0 {
		return nil, &HasDiagnosticsError{Count: len(diagnostics)}
	}

	tracker := analyzer.TrackerFromContext(ctx)
	if tracker != nil {
		tracker.Add(len(files))
	}

	ext := extract.New(program.Checker(), extract.WithOptions(a.extractOpts))
	table := symtab.New()

	result := &Result{Table: table}

	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if tracker != nil {
			tracker.Tick(f.Path())
		}

		result.RootFiles = append(result.RootFiles, f.Path())
		if f.IsDeclarationOnly() {
			continue
		}

		fs, err := ext.ExtractFile(f)
		if err != nil {
			diagnostics = append(diagnostics, models.Diagnostic{
				Path:    f.Path(),
				Message: (&CheckerError{Path: f.Path(), Err: err}).Error(),
			})
			continue
		}

		if err := table.InsertFile(fs); err != nil {
			return nil, err
		}
	}

	table.PopulateDependents()

	result.Diagnostics = diagnostics
	result.Statistics = a.statistics(table)
	return result, nil
}

// Reanalyze refreshes a single file atomically: the file's prior symbols
// and all edges incident to them are removed before reinsertion.
func (a *Analyzer) Reanalyze(result *Result, checker ast.Checker, f ast.File) error {
	ext := extract.New(checker, extract.WithOptions(a.extractOpts))
	fs, err := ext.ExtractFile(f)
	if err != nil {
		return &CheckerError{Path: f.Path(), Err: err}
	}

	result.Table.RemoveFile(f.Key())
	if err := result.Table.InsertFile(fs); err != nil {
		return err
	}
	result.Table.PopulateDependents()
	result.Statistics = a.statistics(result.Table)
	return nil
}

func (a *Analyzer) statistics(table *symtab.Table) models.ProjectStatistics {
	stats := models.ProjectStatistics{
		SymbolsPerFile: make(map[string]int),
	}
	for _, fs := range table.Files() {
		stats.TotalFiles++
		stats.TotalSymbols += fs.SymbolCount()
		stats.TotalImports += fs.Imports.Len()
		stats.SymbolsPerFile[fs.FileKey] = fs.SymbolCount()
	}
	stats.TotalEdges = table.EdgeCount()
	return stats
}
