package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/halcyonlabs/prism/pkg/analyzer/shake"
	"github.com/halcyonlabs/prism/pkg/models"
)

// AdjacencyOptions configures adjacency-list emission.
type AdjacencyOptions struct {
	// WithLocation appends "(file:line)" to each symbol header.
	WithLocation bool
}

// Adjacency writes every symbol in included and unused with a sorted list
// of its dependencies, "(none)" when empty. Output is sorted by local
// name, ties broken by id.
func (r *Reporter) Adjacency(w io.Writer, res *shake.Result, opts AdjacencyOptions) error {
	ids := append(res.IncludedList(), res.Unused...)

	sort.Slice(ids, func(i, j int) bool {
		ni, nj := models.NameOf(ids[i]), models.NameOf(ids[j])
		if ni != nj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		header := id
		if opts.WithLocation {
			if sym, ok := res.Analysis.Table.Get(id); ok {
				header = fmt.Sprintf("%s (%s:%d)", id, sym.FileKey, sym.Location.Line)
			}
		}
		fmt.Fprintf(w, "%s\n", header)

		deps := res.Analysis.Table.Dependencies(id)
		if len(deps) == 0 {
			fmt.Fprintln(w, "  (none)")
			continue
		}
		for _, dep := range deps {
			fmt.Fprintf(w, "  %s\n", dep)
		}
	}
	return nil
}
