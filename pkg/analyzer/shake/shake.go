// Package shake computes the live set from declared entry points and the
// complement that is safe to remove.
package shake

import (
	"sort"

	"github.com/halcyonlabs/prism/pkg/analyzer/project"
	"github.com/halcyonlabs/prism/pkg/models"
)

// Result is a tree-shaking run over a finished analysis.
type Result struct {
	Analysis    *project.Result
	EntryPoints []string
	// Included is the forward closure of the entry points.
	Included map[string]struct{}
	// Unused is every stored symbol outside the closure, sorted.
	Unused []string
	// MissingEntries are entry ids with no matching symbol. They stay in
	// the closure so reports can flag them; they never fail the run.
	MissingEntries []string
	IncludedByFile map[string][]string
	UnusedByFile   map[string][]string
	FileSummaries  map[string]models.FileShakeSummary
	Statistics     models.ShakeStatistics
}

// Shake computes the closure partition for the given entry-point ids,
// each of the form "<file_key>:<name>".
func Shake(analysis *project.Result, entries []string) *Result {
	table := analysis.Table

	res := &Result{
		Analysis:       analysis,
		EntryPoints:    append([]string(nil), entries...),
		IncludedByFile: make(map[string][]string),
		UnusedByFile:   make(map[string][]string),
		FileSummaries:  make(map[string]models.FileShakeSummary),
	}

	for _, id := range entries {
		if _, ok := table.Get(id); !ok {
			res.MissingEntries = append(res.MissingEntries, id)
		}
	}
	sort.Strings(res.MissingEntries)

	res.Included = table.ForwardClosure(entries)
	res.Unused = table.FindUnused(res.Included)

	for id := range res.Included {
		key := models.FileKeyOf(id)
		res.IncludedByFile[key] = append(res.IncludedByFile[key], id)
	}
	for _, id := range res.Unused {
		key := models.FileKeyOf(id)
		res.UnusedByFile[key] = append(res.UnusedByFile[key], id)
	}
	for _, ids := range res.IncludedByFile {
		sort.Strings(ids)
	}

	// Included counts only stored symbols; missing entries inflate the
	// closure but not the statistics.
	includedStored := 0
	for id := range res.Included {
		if _, ok := table.Get(id); ok {
			includedStored++
		}
	}
	res.Statistics = models.NewShakeStatistics(table.SymbolCount(), includedStored)

	for _, fs := range table.Files() {
		total := fs.SymbolCount()
		included := 0
		fs.EachSymbol(func(sym *models.Symbol) {
			if _, ok := res.Included[sym.ID]; ok {
				included++
			}
		})
		stats := models.NewShakeStatistics(total, included)
		res.FileSummaries[fs.FileKey] = models.FileShakeSummary{
			TotalSymbols:    stats.TotalSymbols,
			IncludedSymbols: stats.IncludedSymbols,
			UnusedSymbols:   stats.UnusedSymbols,
			RemovalRate:     stats.RemovalRate,
		}
	}

	return res
}

// IncludedList returns the closure as a sorted slice.
func (r *Result) IncludedList() []string {
	out := make([]string, 0, len(r.Included))
	for id := range r.Included {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
