// Package pkg provides the libraries behind gridpath, a shortest-path
// searcher for grids with barriers.
//
// # Overview
//
// A grid is a fixed rows×cols array of cells. Moves go up, down, left or
// right at unit cost. gridpath finds a shortest path from the start cell to
// the end cell with A* (Manhattan heuristic) or Dijkstra and records every
// cell the search touched, so callers can replay or render its progress.
//
// # Architecture
//
//	text grid ("S . # E")
//	         ↓
//	    [grid] package (parse, edit, neighbors)
//	         ↓
//	    [search] package (A*/Dijkstra, step observer, path reconstruction)
//	         ↓
//	    [solver] package (validation, caching, run IDs, logging)
//	         ↓
//	    CLI output / HTTP JSON / WebSocket steps
//
// # Quick Start
//
//	g, _ := grid.ParseString("S . .\n. # .\n. . E\n")
//	res, _ := search.Run(ctx, g, search.AStar, nil)
//	fmt.Println(res.Status, res.Length) // found 4
//	g.Format(os.Stdout)
//
// # Main Packages
//
// [grid] - Cells, the grid, editor operations (SetStart, SetEnd,
// ToggleBarrier, Clear, Place) and the text format.
//
// [search] - The search engine. Both modes share one frontier ordered by
// (rank, insertion sequence) and differ only in the rank.
//
// [solver] - Request/response layer used by the CLI and the HTTP server.
// Results are cached through [cache].
//
// [cache] - Cache backends: null, in-memory, file and Redis.
//
// [errors] - Structured error codes shared by every package.
//
// [observability] - Optional hooks for search, cache and HTTP events.
//
// [buildinfo] - Version information injected at link time.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridpath/pkg/grid
// [search]: https://pkg.go.dev/github.com/matzehuels/gridpath/pkg/search
// [solver]: https://pkg.go.dev/github.com/matzehuels/gridpath/pkg/solver
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridpath/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridpath/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridpath/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gridpath/pkg/buildinfo
package pkg
