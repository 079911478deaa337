package search

import (
	"context"
	"math"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/grid"
)

// StepFunc observes every state change the search makes: a cell marked Open
// when it joins the frontier, Closed when it is expanded, and Path during
// reconstruction. It runs synchronously on the search goroutine and may read
// the grid. Returning a non-nil error stops the search with ABORTED.
type StepFunc func(p grid.Pos, s grid.State) error

const unreached = math.MaxInt

// FindPath searches g for a shortest path from start to end.
//
// Preconditions are checked before anything is touched; a violation returns
// INVALID_INPUT. While the search runs the grid is held busy, so editor
// operations and a second FindPath on the same grid fail with GRID_BUSY.
//
// On Found the path cells are marked Path and the start and end cells get
// back the states they had before the search. On NotFound the Open and Closed
// marks are left for the caller to inspect. Either way the returned error is
// nil; a missing path is a result.
//
// If onStep returns an error or ctx is cancelled, FindPath returns ABORTED
// wrapping the cause. Marks made so far stay on the grid. onStep may be nil.
func FindPath(ctx context.Context, g *grid.Grid, start, end grid.Pos, mode Mode, onStep StepFunc) (Result, error) {
	if err := checkInput(g, start, end, mode); err != nil {
		return Result{}, err
	}
	if err := g.BeginSearch(); err != nil {
		return Result{}, err
	}
	defer g.EndSearch()

	r := newRunner(g, start, end, mode, onStep)
	return r.run(ctx)
}

// Run searches between the grid's own start and end cells.
func Run(ctx context.Context, g *grid.Grid, mode Mode, onStep StepFunc) (Result, error) {
	if g == nil {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "grid is nil")
	}
	start, ok := g.Start()
	if !ok {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "grid has no start cell")
	}
	end, ok := g.End()
	if !ok {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "grid has no end cell")
	}
	return FindPath(ctx, g, start, end, mode, onStep)
}

func checkInput(g *grid.Grid, start, end grid.Pos, mode Mode) error {
	switch {
	case g == nil:
		return errors.New(errors.ErrCodeInvalidInput, "grid is nil")
	case !mode.Valid():
		return errors.New(errors.ErrCodeInvalidInput, "invalid search mode %d", uint8(mode))
	case !g.InBounds(start):
		return errors.New(errors.ErrCodeInvalidInput, "start %s is outside the %dx%d grid", start, g.Rows(), g.Cols())
	case !g.InBounds(end):
		return errors.New(errors.ErrCodeInvalidInput, "end %s is outside the %dx%d grid", end, g.Rows(), g.Cols())
	case start == end:
		return errors.New(errors.ErrCodeInvalidInput, "start and end are the same cell %s", start)
	case g.State(start) == grid.Barrier:
		return errors.New(errors.ErrCodeInvalidInput, "start %s is a barrier", start)
	case g.State(end) == grid.Barrier:
		return errors.New(errors.ErrCodeInvalidInput, "end %s is a barrier", end)
	}
	return nil
}

// runner holds the per-call search state. It is discarded when FindPath
// returns, whatever the outcome.
type runner struct {
	g          *grid.Grid
	start, end grid.Pos
	mode       Mode
	onStep     StepFunc

	gScore   []int
	cameFrom map[grid.Pos]grid.Pos
	open     *frontier
	seq      int

	startState, endState grid.State
	res                  Result
}

func newRunner(g *grid.Grid, start, end grid.Pos, mode Mode, onStep StepFunc) *runner {
	gScore := make([]int, g.Len())
	for i := range gScore {
		gScore[i] = unreached
	}
	return &runner{
		g:          g,
		start:      start,
		end:        end,
		mode:       mode,
		onStep:     onStep,
		gScore:     gScore,
		cameFrom:   make(map[grid.Pos]grid.Pos),
		open:       newFrontier(g),
		startState: g.State(start),
		endState:   g.State(end),
		res:        Result{Mode: mode},
	}
}

func (r *runner) run(ctx context.Context) (Result, error) {
	r.gScore[r.g.Index(r.start)] = 0
	r.open.push(r.start, r.mode.rank(0, r.start, r.end), r.seq)

	for r.open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return r.res, errors.Wrap(errors.ErrCodeAborted, err, "search cancelled after %d expansions", r.res.Expanded)
		}

		cur := r.open.pop().pos
		r.res.Expanded++

		if cur == r.end {
			path, err := r.reconstruct()
			if err != nil {
				return r.res, err
			}
			r.g.Mark(r.start, r.startState)
			r.g.Mark(r.end, r.endState)
			r.res.Status = Found
			r.res.Path = path
			r.res.Length = len(path) - 1
			return r.res, nil
		}

		if err := r.expand(cur); err != nil {
			return r.res, err
		}

		if cur != r.start {
			r.g.Mark(cur, grid.Closed)
			if err := r.step(cur, grid.Closed); err != nil {
				return r.res, err
			}
		}
	}

	r.res.Status = NotFound
	return r.res, nil
}

// expand relaxes every neighbor of cur. A neighbor reached by a strictly
// shorter route gets a new predecessor and score. It joins the frontier only
// if absent; an enqueued entry keeps the rank it was pushed with.
func (r *runner) expand(cur grid.Pos) error {
	cand := r.gScore[r.g.Index(cur)] + 1
	for _, nb := range r.g.Neighbors(cur) {
		i := r.g.Index(nb.Pos)
		if cand >= r.gScore[i] {
			continue
		}
		r.cameFrom[nb.Pos] = cur
		r.gScore[i] = cand

		if r.open.contains(nb.Pos) {
			continue
		}
		r.seq++
		r.open.push(nb.Pos, r.mode.rank(cand, nb.Pos, r.end), r.seq)
		r.g.Mark(nb.Pos, grid.Open)
		r.res.Opened++
		if err := r.step(nb.Pos, grid.Open); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) step(p grid.Pos, s grid.State) error {
	if r.onStep == nil {
		return nil
	}
	if err := r.onStep(p, s); err != nil {
		return errors.Wrap(errors.ErrCodeAborted, err, "search stopped at %s after %d expansions", p, r.res.Expanded)
	}
	return nil
}
