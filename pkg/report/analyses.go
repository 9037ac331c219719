package report

import (
	"context"
	"sort"

	"github.com/halcyonlabs/prism/pkg/symtab"
)

// Impact is the reverse-closure summary for one symbol.
type Impact struct {
	Target string `json:"target" toon:"target"`
	// Direct lists the symbols depending on the target directly.
	Direct []string `json:"direct_dependents" toon:"direct_dependents"`
	// All is the full reverse transitive closure, target excluded.
	All   []string `json:"all_dependents" toon:"all_dependents"`
	Count int      `json:"count" toon:"count"`
}

// ImpactAnalysis wraps the reverse closure from one target id.
func ImpactAnalysis(table *symtab.Table, id string) Impact {
	closure := table.ReverseClosure([]string{id})

	all := make([]string, 0, len(closure))
	for dep := range closure {
		if dep != id {
			all = append(all, dep)
		}
	}
	sort.Strings(all)

	return Impact{
		Target: id,
		Direct: table.Dependents(id),
		All:    all,
		Count:  len(all),
	}
}

// FindCircularDependencies exposes cycle detection with rotations
// deduplicated for stable presentation.
func FindCircularDependencies(ctx context.Context, table *symtab.Table) ([][]string, error) {
	cycles, err := table.FindCycles(ctx)
	if err != nil {
		return nil, err
	}
	return symtab.CanonicalizeCycles(cycles), nil
}

// RankedSymbol pairs a symbol id with its dependency count.
type RankedSymbol struct {
	ID           string `json:"id" toon:"id"`
	Dependencies int    `json:"dependencies" toon:"dependencies"`
}

// FindLargestSymbols returns the top k symbols ranked by dependency
// count, ties broken by id.
func FindLargestSymbols(table *symtab.Table, k int) []RankedSymbol {
	ranked := make([]RankedSymbol, 0, table.SymbolCount())
	for _, id := range table.AllIDs() {
		ranked = append(ranked, RankedSymbol{ID: id, Dependencies: len(table.Dependencies(id))})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Dependencies != ranked[j].Dependencies {
			return ranked[i].Dependencies > ranked[j].Dependencies
		}
		return ranked[i].ID < ranked[j].ID
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
