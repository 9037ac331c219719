package symtab

import (
	"context"
)

type visitColor uint8

const (
	colorWhite visitColor = iota
	colorGrey
	colorBlack
)

// FindCycles enumerates dependency cycles with a grey/black DFS. When a
// grey node is revisited, the slice of the current path from its first
// occurrence through the re-encountered node is recorded as a cycle.
// Roots iterate in sorted id order so output is deterministic across runs
// on identical input. Rotations of the same vertex set may appear more
// than once; callers canonicalize if they need uniqueness.
//
// The context is checked between DFS roots; a tripped signal returns
// context.Canceled promptly.
func (t *Table) FindCycles(ctx context.Context) ([][]string, error) {
	colors := make(map[string]visitColor, len(t.global))
	var cycles [][]string
	var path []string

	var visit func(id string)
	visit = func(id string) {
		colors[id] = colorGrey
		path = append(path, id)

		for _, next := range sortedSet(t.forward[id]) {
			switch colors[next] {
			case colorGrey:
				// Back edge: slice the path from next's first occurrence.
				for i, p := range path {
					if p == next {
						cycle := make([]string, len(path)-i+1)
						copy(cycle, path[i:])
						cycle[len(cycle)-1] = next
						cycles = append(cycles, cycle)
						break
					}
				}
			case colorWhite:
				visit(next)
			}
		}

		path = path[:len(path)-1]
		colors[id] = colorBlack
	}

	for _, id := range t.AllIDs() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if colors[id] == colorWhite {
			visit(id)
		}
	}
	return cycles, nil
}

// CanonicalizeCycles deduplicates rotations of the same cycle, keeping the
// rotation that starts at the lexicographically smallest vertex.
func CanonicalizeCycles(cycles [][]string) [][]string {
	seen := make(map[string]bool, len(cycles))
	var out [][]string

	for _, cycle := range cycles {
		if len(cycle) < 2 {
			continue
		}
		verts := cycle[:len(cycle)-1]

		minIdx := 0
		for i, v := range verts {
			if v < verts[minIdx] {
				minIdx = i
			}
		}
		rotated := make([]string, 0, len(verts)+1)
		rotated = append(rotated, verts[minIdx:]...)
		rotated = append(rotated, verts[:minIdx]...)
		rotated = append(rotated, verts[minIdx])

		key := ""
		for _, v := range rotated {
			key += v + "\x00"
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, rotated)
		}
	}
	return out
}
