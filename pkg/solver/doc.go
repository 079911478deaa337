// Package solver runs path searches on text grids for the CLI and the HTTP
// server.
//
// A [Runner] takes a [Request] (grid rows, mode, optional step limit and
// observer), parses the grid, looks the result up in its cache, runs the
// search when needed and returns a [Response] carrying the path and the
// annotated grid. Every solve gets a UUID run ID that appears in the
// response, the logs and the observability hooks.
//
//	r := solver.NewRunner(cache.NewMemoryCache(), nil, logger)
//	resp, err := r.Solve(ctx, solver.Request{
//	    Grid: []string{"S . #", ". . E"},
//	    Mode: search.Dijkstra,
//	})
//
// Results are cached by the canonical grid text and mode. Requests with a
// step observer or a step limit always run the search.
package solver
