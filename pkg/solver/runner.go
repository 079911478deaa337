package solver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gridpath/pkg/cache"
	"github.com/matzehuels/gridpath/pkg/grid"
	"github.com/matzehuels/gridpath/pkg/observability"
	"github.com/matzehuels/gridpath/pkg/search"
)

// cacheKeyType labels solve entries in cache hooks.
const cacheKeyType = "solve"

// Runner turns text grids into search results, with caching.
// Both the CLI and the HTTP server use it so the cache and logging
// behaviour is identical everywhere.
//
// The Runner holds no per-request state; multiple goroutines can share one.
// Every request parses its own Grid.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration

	// newID is swapped in tests for stable run IDs.
	newID func() string
}

// NewRunner creates a runner with the given cache and keyer.
// A nil cache disables caching, a nil keyer uses DefaultKeyer and a nil
// logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
		newID:  uuid.NewString,
	}
}

// Solve parses req.Grid, searches between its start and end cells and
// returns the annotated result. Input problems come back with INVALID_*
// codes, stopped searches with ABORTED; a grid without a path is a normal
// NotFound response.
func (r *Runner) Solve(ctx context.Context, req Request) (*Response, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	g, err := grid.ParseLines(req.Grid)
	if err != nil {
		return nil, err
	}
	// Marks from a previous run's dump must not change the key or the result.
	if err := g.ResetSearch(); err != nil {
		return nil, err
	}

	runID := r.newID()
	logger := r.Logger.With("run_id", runID)
	key := r.Keyer.SolveKey(g.String(), req.Mode.String())

	if req.cacheable() && !req.Refresh {
		if resp, ok := r.lookup(ctx, key, logger); ok {
			resp.RunID = runID
			logger.Debug("cache hit", "mode", resp.Mode, "status", resp.Status)
			return resp, nil
		}
	}

	resp, err := r.run(ctx, runID, g, req, logger)
	if err != nil {
		return nil, err
	}

	if req.cacheable() {
		r.store(ctx, key, resp, logger)
	}
	return resp, nil
}

func (r *Runner) run(ctx context.Context, runID string, g *grid.Grid, req Request, logger *log.Logger) (*Response, error) {
	hooks := observability.Search()
	mode := req.Mode.String()
	hooks.OnSearchStart(ctx, runID, mode, g.Rows(), g.Cols())

	start := time.Now()
	res, err := search.Run(ctx, g, req.Mode, stepLimiter(req.StepLimit, req.OnStep))
	elapsed := time.Since(start)

	if err != nil {
		hooks.OnSearchComplete(ctx, runID, mode, "", res.Expanded, elapsed, err)
		logger.Warn("search failed",
			"mode", mode,
			"expanded", res.Expanded,
			"duration", elapsed,
			"err", err)
		return nil, fmt.Errorf("solve %dx%d grid: %w", g.Rows(), g.Cols(), err)
	}
	hooks.OnSearchComplete(ctx, runID, mode, res.Status.String(), res.Expanded, elapsed, nil)

	logger.Info("solved",
		"mode", mode,
		"size", fmt.Sprintf("%dx%d", g.Rows(), g.Cols()),
		"status", res.Status,
		"length", res.Length,
		"expanded", res.Expanded,
		"duration", elapsed)

	resp := newResponse(runID, res, g)
	resp.Duration = elapsed
	return resp, nil
}

func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (*Response, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		// Undecodable entry: recompute and overwrite.
		logger.Debug("discarding cache entry", "err", err)
		hooks.OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, cacheKeyType)
	resp.Cached = true
	return &resp, true
}

func (r *Runner) store(ctx context.Context, key string, resp *Response, logger *log.Logger) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Warn("encode result for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// stepLimiter wraps next so the search stops once more than limit cells
// have been marked Closed. The start and a reached end are never marked
// Closed, so they do not count. limit 0 returns next unchanged.
func stepLimiter(limit int, next search.StepFunc) search.StepFunc {
	if limit <= 0 {
		return next
	}
	closed := 0
	return func(p grid.Pos, s grid.State) error {
		if s == grid.Closed {
			closed++
			if closed > limit {
				return ErrStepLimit
			}
		}
		if next != nil {
			return next(p, s)
		}
		return nil
	}
}
