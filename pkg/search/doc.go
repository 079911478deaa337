// Package search finds shortest paths on a [grid.Grid].
//
// Two interchangeable algorithms are provided, selected by [Mode]:
//
//   - [AStar] ranks frontier cells by g + h, where g is the distance from
//     start and h is the Manhattan distance to the end
//   - [Dijkstra] ranks by g only (uniform-cost search)
//
// Both share the same frontier: a binary heap ordered by (rank, insertion
// sequence, cell). The sequence is a counter bumped on every insertion, so
// among equal ranks the cell inserted first is expanded first. Results are
// therefore fully deterministic for a given grid and mode.
//
// # Observing a Search
//
// [FindPath] and [Run] call an optional [StepFunc] for each cell they mark:
// Open when it joins the frontier, Closed when it is expanded, and Path while
// the route is reconstructed. Front ends use it to animate progress; tests
// and limits use it to stop a search early by returning an error, which
// surfaces as ABORTED.
//
//	res, err := search.Run(ctx, g, search.AStar, func(p grid.Pos, s grid.State) error {
//	    fmt.Println(s, p)
//	    return nil
//	})
//
// # Grid Ownership
//
// A search holds its grid busy from start to finish. Editing the grid from
// the step callback, or starting a second search on it, fails with
// GRID_BUSY. Run searches on separate grids (see [grid.Grid.Clone]) to
// compare modes side by side.
package search
