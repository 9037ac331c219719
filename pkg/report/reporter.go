// Package report serializes analysis results to the human- and
// machine-readable forms the tool exposes. Every report is a pure
// function of its result; collections are emitted in sorted or insertion
// order so identical inputs produce identical bytes.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/halcyonlabs/prism/pkg/analyzer/shake"
	"github.com/halcyonlabs/prism/pkg/models"
)

// Reporter renders shake results.
type Reporter struct {
	now func() time.Time
}

// Option is a functional option for configuring Reporter.
type Option func(*Reporter)

// WithClock replaces the timestamp source, pinning report timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		r.now = now
	}
}

// New creates a reporter.
func New(opts ...Option) *Reporter {
	r := &Reporter{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Summary writes totals and the removal percentage.
func (r *Reporter) Summary(w io.Writer, res *shake.Result) error {
	stats := res.Statistics
	fmt.Fprintf(w, "Tree Shaking Summary\n")
	fmt.Fprintf(w, "====================\n")
	fmt.Fprintf(w, "Total symbols:    %d\n", stats.TotalSymbols)
	fmt.Fprintf(w, "Included symbols: %d\n", stats.IncludedSymbols)
	fmt.Fprintf(w, "Unused symbols:   %d\n", stats.UnusedSymbols)
	fmt.Fprintf(w, "Removal rate:     %.2f%%\n", stats.RemovalRate)
	return nil
}

// Detailed writes the summary, entry points, then included and unused
// symbols grouped by file with type text when known.
func (r *Reporter) Detailed(w io.Writer, res *shake.Result) error {
	if err := r.Summary(w, res); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nEntry points:\n")
	for _, entry := range res.EntryPoints {
		fmt.Fprintf(w, "  %s\n", entry)
	}
	for _, missing := range res.MissingEntries {
		fmt.Fprintf(w, "  warning: entry point %s matches no symbol\n", missing)
	}

	fmt.Fprintf(w, "\nIncluded symbols:\n")
	r.writeGrouped(w, res, res.IncludedByFile)

	fmt.Fprintf(w, "\nUnused symbols:\n")
	r.writeGrouped(w, res, res.UnusedByFile)
	return nil
}

func (r *Reporter) writeGrouped(w io.Writer, res *shake.Result, byFile map[string][]string) {
	keys := make([]string, 0, len(byFile))
	for key := range byFile {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(w, "  %s:\n", key)
		for _, id := range byFile[key] {
			line := "    " + models.NameOf(id)
			if sym, ok := res.Analysis.Table.Get(id); ok && sym.TypeText != "" {
				line += ": " + sym.TypeText
			}
			fmt.Fprintln(w, line)
		}
	}
}
