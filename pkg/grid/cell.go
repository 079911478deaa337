package grid

import (
	"fmt"
)

// State is the categorical state of a cell. Exactly one state holds at a
// time; there are no overlapping flags.
type State uint8

const (
	// Empty is a passable cell the search has not touched.
	Empty State = iota
	// Barrier is impassable and never appears in a neighbor list.
	Barrier
	// Start is the search origin. At most one exists per grid.
	Start
	// End is the search goal. At most one exists per grid.
	End
	// Open marks a cell that is currently, or was once, on the frontier.
	Open
	// Closed marks a cell the search has expanded.
	Closed
	// Path marks a cell on the reconstructed shortest path.
	Path
)

var stateNames = [...]string{
	Empty:   "empty",
	Barrier: "barrier",
	Start:   "start",
	End:     "end",
	Open:    "open",
	Closed:  "closed",
	Path:    "path",
}

var stateSymbols = [...]byte{
	Empty:   '.',
	Barrier: '#',
	Start:   'S',
	End:     'E',
	Open:    'o',
	Closed:  'x',
	Path:    '*',
}

// String returns the lower-case state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// Symbol returns the single-character symbol used by the text grid format.
func (s State) Symbol() byte {
	if int(s) < len(stateSymbols) {
		return stateSymbols[s]
	}
	return '?'
}

// Transient reports whether the state is written by a search (Open, Closed,
// Path) rather than by the editor.
func (s State) Transient() bool {
	return s == Open || s == Closed || s == Path
}

// StateForSymbol maps a text-format symbol back to its State.
func StateForSymbol(b byte) (State, bool) {
	for s, sym := range stateSymbols {
		if sym == b {
			return State(s), true
		}
	}
	return Empty, false
}

// Pos identifies a cell by row and column, both zero-based.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String formats the position as "(row,col)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Manhattan returns |Δrow| + |Δcol| between p and q.
func (p Pos) Manhattan(q Pos) int {
	return abs(p.Row-q.Row) + abs(p.Col-q.Col)
}

// Cell is a grid location together with its current state.
type Cell struct {
	Pos
	State State
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
