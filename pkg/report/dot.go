package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/halcyonlabs/prism/pkg/analyzer/shake"
	"github.com/halcyonlabs/prism/pkg/models"
)

// DOTOptions configures graph rendering.
type DOTOptions struct {
	// MaxNodes caps the displayed subset. Zero means the default of 100.
	MaxNodes int
	// IncludedOnly drops unused symbols from the graph.
	IncludedOnly bool
}

// DefaultDOTOptions returns the rendering defaults.
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{MaxNodes: 100}
}

// DOT renders the displayed subset as a Graphviz digraph. Nodes are
// labeled with the symbol's local name and colored by inclusion; edges
// are drawn only between nodes both present in the subset.
func (r *Reporter) DOT(w io.Writer, res *shake.Result, opts DOTOptions) error {
	maxNodes := opts.MaxNodes
	if maxNodes <= 0 {
		maxNodes = 100
	}

	var ids []string
	ids = append(ids, res.IncludedList()...)
	if !opts.IncludedOnly {
		ids = append(ids, res.Unused...)
	}
	if len(ids) > maxNodes {
		ids = ids[:maxNodes]
	}

	shown := make(map[string]bool, len(ids))
	for _, id := range ids {
		shown[id] = true
	}

	fmt.Fprintln(w, "digraph Dependencies {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node[shape=box,style=filled];")

	for _, id := range ids {
		fill := "lightcoral"
		if _, ok := res.Included[id]; ok {
			fill = "lightgreen"
		}
		fmt.Fprintf(w, "  %q [label=\"%s\", fillcolor=%s];\n", id, escapeLabel(models.NameOf(id)), fill)
	}

	for _, id := range ids {
		for _, dep := range res.Analysis.Table.Dependencies(id) {
			if shown[dep] {
				fmt.Fprintf(w, "  %q -> %q;\n", id, dep)
			}
		}
	}

	fmt.Fprintln(w, "}")
	return nil
}

// escapeLabel escapes double quotes; no other escaping is applied.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
