// Package grid provides the 2-D cell grid that path searches run on.
//
// # Overview
//
// A [Grid] is a fixed rows×cols array of cells. Each cell holds exactly one
// [State]: Empty, Barrier, Start, End, or one of the marks a search leaves
// behind (Open, Closed, Path). Cells are adjacent when they share an edge;
// Barrier cells have no neighbors and every edge costs 1.
//
// # Basic Usage
//
// Build a grid with [New], place the endpoints and barriers with the editor
// operations, then hand it to the search package:
//
//	g, _ := grid.New(5, 5)
//	_ = g.SetStart(grid.Pos{Row: 0, Col: 0})
//	_ = g.SetEnd(grid.Pos{Row: 4, Col: 4})
//	_ = g.SetBarrier(grid.Pos{Row: 2, Col: 2})
//
// Grids can also be read from and written to a small text format, see
// [Parse] and [Grid.Format].
//
// # Editing Rules
//
// The editor operations ([Grid.SetStart], [Grid.SetEnd], [Grid.SetBarrier],
// [Grid.ToggleBarrier], [Grid.Clear], [Grid.Place]) keep at most one start and
// one end, never let one role overwrite another, and fail with GRID_BUSY while
// a search holds the grid. The rules live in the data structure so every
// front end gets them.
//
// # Concurrency
//
// A Grid tolerates one editing goroutine alongside one search. Searches take
// the grid with [Grid.BeginSearch] and release it with [Grid.EndSearch];
// everything else must be synchronized by the caller.
package grid
