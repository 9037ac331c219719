package symtab

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// ForwardClosure returns the set reachable from roots over forward edges.
// Roots that match no stored symbol are retained in the result so callers
// can flag them. BFS with a FIFO queue; first visit wins. The traversal
// is read-only, so closures may run concurrently over a finished table.
func (t *Table) ForwardClosure(roots []string) map[string]struct{} {
	return t.closure(roots, t.forward)
}

// ReverseClosure returns the set reaching targets over reverse edges.
func (t *Table) ReverseClosure(targets []string) map[string]struct{} {
	return t.closure(targets, t.reverse)
}

func (t *Table) closure(seeds []string, edges map[string]map[string]struct{}) map[string]struct{} {
	// Every stored id and edge endpoint is interned at insert time, so the
	// bitmap covers the whole reachable graph; only unknown seeds need the
	// side set.
	visited := roaring.New()
	unknown := make(map[string]struct{})
	markSeen := func(id string) bool {
		if idx, ok := t.idIndex[id]; ok {
			if visited.Contains(idx) {
				return true
			}
			visited.Add(idx)
			return false
		}
		if _, ok := unknown[id]; ok {
			return true
		}
		unknown[id] = struct{}{}
		return false
	}

	result := make(map[string]struct{}, len(seeds))
	queue := make([]string, 0, len(seeds))

	for _, id := range seeds {
		if markSeen(id) {
			continue
		}
		result[id] = struct{}{}
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		// Deterministic expansion keeps queue order stable across runs.
		for _, next := range sortedSet(edges[current]) {
			if markSeen(next) {
				continue
			}
			result[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return result
}

// FindUnused returns all stored symbol ids outside the live set, sorted.
func (t *Table) FindUnused(live map[string]struct{}) []string {
	var unused []string
	for id := range t.global {
		if _, ok := live[id]; !ok {
			unused = append(unused, id)
		}
	}
	sort.Strings(unused)
	return unused
}
