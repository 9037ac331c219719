package symtab

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// GraphSummary aggregates structural statistics over the stored graph.
type GraphSummary struct {
	TotalSymbols                int      `json:"total_symbols" toon:"total_symbols"`
	TotalEdges                  int      `json:"total_edges" toon:"total_edges"`
	Components                  int      `json:"components" toon:"components"`
	LargestComponent            int      `json:"largest_component" toon:"largest_component"`
	StronglyConnectedComponents int      `json:"strongly_connected_components" toon:"strongly_connected_components"`
	CycleNodes                  []string `json:"cycle_nodes,omitempty" toon:"cycle_nodes,omitempty"`
	IsCyclic                    bool     `json:"is_cyclic" toon:"is_cyclic"`
}

// gonumView holds the gonum representation and id mappings.
type gonumView struct {
	directed   *simple.DirectedGraph
	undirected *simple.UndirectedGraph
	toGonum    map[string]int64
	fromGonum  map[int64]string
}

// toGonumView converts the table's adjacency to gonum graph types. Edges
// to ids with no stored symbol are included; they participate in
// connectivity like any other vertex.
func (t *Table) toGonumView() *gonumView {
	v := &gonumView{
		directed:   simple.NewDirectedGraph(),
		undirected: simple.NewUndirectedGraph(),
		toGonum:    make(map[string]int64),
		fromGonum:  make(map[int64]string),
	}

	add := func(id string) int64 {
		if gid, ok := v.toGonum[id]; ok {
			return gid
		}
		gid := int64(len(v.toGonum))
		v.toGonum[id] = gid
		v.fromGonum[gid] = id
		v.directed.AddNode(simple.Node(gid))
		v.undirected.AddNode(simple.Node(gid))
		return gid
	}

	for _, id := range t.AllIDs() {
		add(id)
	}
	for from, targets := range t.forward {
		fromID := add(from)
		for to := range targets {
			toID := add(to)
			if fromID == toID {
				continue
			}
			v.directed.SetEdge(simple.Edge{F: simple.Node(fromID), T: simple.Node(toID)})
			if !v.undirected.HasEdgeBetween(fromID, toID) {
				v.undirected.SetEdge(simple.Edge{F: simple.Node(fromID), T: simple.Node(toID)})
			}
		}
	}
	return v
}

// Summary computes component and cycle statistics using gonum.
func (t *Table) Summary() GraphSummary {
	summary := GraphSummary{
		TotalSymbols: len(t.global),
		TotalEdges:   t.EdgeCount(),
	}
	if len(t.global) == 0 {
		return summary
	}

	view := t.toGonumView()

	components := topo.ConnectedComponents(view.undirected)
	summary.Components = len(components)
	for _, comp := range components {
		if len(comp) > summary.LargestComponent {
			summary.LargestComponent = len(comp)
		}
	}

	// SCCs with more than one vertex are the actual cycles.
	cycleNodes := make(map[string]bool)
	for _, scc := range topo.TarjanSCC(view.directed) {
		if len(scc) <= 1 {
			continue
		}
		summary.StronglyConnectedComponents++
		for _, n := range scc {
			cycleNodes[view.fromGonum[n.ID()]] = true
		}
	}
	summary.IsCyclic = summary.StronglyConnectedComponents > 0

	for id := range cycleNodes {
		summary.CycleNodes = append(summary.CycleNodes, id)
	}
	sort.Strings(summary.CycleNodes)

	return summary
}
