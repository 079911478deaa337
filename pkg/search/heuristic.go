package search

import "github.com/matzehuels/gridpath/pkg/grid"

// Manhattan is the A* heuristic: |Δrow| + |Δcol|. It never overestimates
// on a 4-connected unit-cost grid.
func Manhattan(p, end grid.Pos) int {
	return p.Manhattan(end)
}

// rank returns the frontier priority of a cell whose best known distance
// from start is g.
func (m Mode) rank(g int, p, end grid.Pos) int {
	if m == AStar {
		return g + Manhattan(p, end)
	}
	return g
}
