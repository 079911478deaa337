package grid

import (
	"sync"

	"github.com/matzehuels/gridpath/pkg/errors"
)

// neighborOffsets lists (Δrow, Δcol) in the order neighbors are reported:
// down, up, left, right. The order feeds the search's insertion sequence,
// so changing it changes which of several equal-length paths is found.
var neighborOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, -1}, {0, 1}}

// Grid is a fixed-size rows×cols collection of cells.
//
// Adjacency is computed on demand from the current Barrier state and is never
// cached. Editing operations (see edit.go) are rejected with GRID_BUSY while a
// search holds the grid via [Grid.BeginSearch].
//
// Grid is safe for one editor goroutine and one search running against it;
// the busy flag keeps the two apart. Reads during a search must come from the
// search's own goroutine or its step observer.
type Grid struct {
	rows, cols int
	cells      []State // row-major

	start, end       Pos
	hasStart, hasEnd bool

	mu   sync.Mutex
	busy bool
}

// New creates an empty rows×cols grid.
// Returns INVALID_SIZE if either dimension is out of range.
func New(rows, cols int) (*Grid, error) {
	if err := errors.ValidateGridSize(rows, cols); err != nil {
		return nil, err
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]State, rows*cols),
	}, nil
}

// NewSquare creates an empty n×n grid.
func NewSquare(n int) (*Grid, error) {
	return New(n, n)
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether p lies within the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Index maps p to its row-major index. p must be in bounds.
func (g *Grid) Index(p Pos) int {
	return p.Row*g.cols + p.Col
}

// PosOf converts a row-major index back to a position.
func (g *Grid) PosOf(i int) Pos {
	return Pos{Row: i / g.cols, Col: i % g.cols}
}

// At returns the cell at p. The second result is false when p is out of bounds.
func (g *Grid) At(p Pos) (Cell, bool) {
	if !g.InBounds(p) {
		return Cell{}, false
	}
	return Cell{Pos: p, State: g.cells[g.Index(p)]}, true
}

// State returns the state at p, or Barrier when p is out of bounds.
func (g *Grid) State(p Pos) State {
	if !g.InBounds(p) {
		return Barrier
	}
	return g.cells[g.Index(p)]
}

// Start returns the start position, if one is set.
func (g *Grid) Start() (Pos, bool) { return g.start, g.hasStart }

// End returns the end position, if one is set.
func (g *Grid) End() (Pos, bool) { return g.end, g.hasEnd }

// Neighbors returns the in-bounds, non-Barrier cells orthogonally adjacent
// to p, in down, up, left, right order. It reads the live grid every call.
func (g *Grid) Neighbors(p Pos) []Cell {
	out := make([]Cell, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		q := Pos{Row: p.Row + d[0], Col: p.Col + d[1]}
		if !g.InBounds(q) {
			continue
		}
		s := g.cells[g.Index(q)]
		if s == Barrier {
			continue
		}
		out = append(out, Cell{Pos: q, State: s})
	}
	return out
}

// Count returns how many cells currently hold state s.
func (g *Grid) Count(s State) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Positions returns every position holding state s in row-major order.
func (g *Grid) Positions(s State) []Pos {
	var out []Pos
	for i, c := range g.cells {
		if c == s {
			out = append(out, g.PosOf(i))
		}
	}
	return out
}

// Clone returns an independent copy of the grid's cells and endpoints.
// The copy is never busy.
func (g *Grid) Clone() *Grid {
	g.mu.Lock()
	defer g.mu.Unlock()
	cp := &Grid{
		rows:     g.rows,
		cols:     g.cols,
		cells:    make([]State, len(g.cells)),
		start:    g.start,
		end:      g.end,
		hasStart: g.hasStart,
		hasEnd:   g.hasEnd,
	}
	copy(cp.cells, g.cells)
	return cp
}

// =============================================================================
// Search access
// =============================================================================

// BeginSearch marks the grid busy. Editing operations fail with GRID_BUSY
// until EndSearch is called. A second BeginSearch while busy fails the same
// way.
func (g *Grid) BeginSearch() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return errors.New(errors.ErrCodeGridBusy, "a search is already running on this grid")
	}
	g.busy = true
	return nil
}

// EndSearch clears the busy mark set by BeginSearch.
func (g *Grid) EndSearch() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

// Busy reports whether a search currently holds the grid.
func (g *Grid) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

// Mark sets the state at p without editor rule checks. It is the search
// engine's write path for Open, Closed and Path marks and for restoring the
// Start and End marks on their own cells. It does not move the start or end
// references.
func (g *Grid) Mark(p Pos, s State) {
	g.cells[g.Index(p)] = s
}

// =============================================================================
// Resets
// =============================================================================

// Reset returns every cell to Empty and forgets the start and end.
func (g *Grid) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.editableLocked(); err != nil {
		return err
	}
	for i := range g.cells {
		g.cells[i] = Empty
	}
	g.hasStart, g.hasEnd = false, false
	return nil
}

// ResetSearch clears Open, Closed and Path marks left by a previous search,
// keeping Barrier, Start and End. The start and end cells get their marks
// back even if a search overwrote them.
func (g *Grid) ResetSearch() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.editableLocked(); err != nil {
		return err
	}
	for i, s := range g.cells {
		if s.Transient() {
			g.cells[i] = Empty
		}
	}
	if g.hasStart {
		g.cells[g.Index(g.start)] = Start
	}
	if g.hasEnd {
		g.cells[g.Index(g.end)] = End
	}
	return nil
}

func (g *Grid) editableLocked() error {
	if g.busy {
		return errors.New(errors.ErrCodeGridBusy, "grid cannot be edited while a search is running")
	}
	return nil
}
