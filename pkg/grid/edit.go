package grid

import (
	"github.com/matzehuels/gridpath/pkg/errors"
)

// Editing operations used by the surrounding editor (file loader, HTTP
// handler, interactive front ends). Each one enforces the grid's role rules:
//   - at most one Start and one End
//   - Start and End are never overwritten by another role
//   - no edit while a search holds the grid
//
// Conflicting requests are rejected with CONFLICT rather than silently
// repaired, so callers always know what the grid looks like.

// SetStart marks p as the start cell. Setting the current start again is a
// no-op. A Barrier or transient cell at p is replaced.
func (g *Grid) SetStart(p Pos) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkEditLocked(p); err != nil {
		return err
	}
	if g.hasStart && g.start == p {
		return nil
	}
	if g.hasStart {
		return errors.New(errors.ErrCodeConflict, "start already set at %s", g.start)
	}
	if g.hasEnd && g.end == p {
		return errors.New(errors.ErrCodeConflict, "%s is the end cell", p)
	}
	g.cells[g.Index(p)] = Start
	g.start, g.hasStart = p, true
	return nil
}

// SetEnd marks p as the end cell. Setting the current end again is a no-op.
func (g *Grid) SetEnd(p Pos) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkEditLocked(p); err != nil {
		return err
	}
	if g.hasEnd && g.end == p {
		return nil
	}
	if g.hasEnd {
		return errors.New(errors.ErrCodeConflict, "end already set at %s", g.end)
	}
	if g.hasStart && g.start == p {
		return errors.New(errors.ErrCodeConflict, "%s is the start cell", p)
	}
	g.cells[g.Index(p)] = End
	g.end, g.hasEnd = p, true
	return nil
}

// SetBarrier makes p impassable.
func (g *Grid) SetBarrier(p Pos) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkEditLocked(p); err != nil {
		return err
	}
	return g.setBarrierLocked(p)
}

// ToggleBarrier flips p between Barrier and Empty. Transient marks count as
// Empty.
func (g *Grid) ToggleBarrier(p Pos) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkEditLocked(p); err != nil {
		return err
	}
	if g.cells[g.Index(p)] == Barrier {
		g.cells[g.Index(p)] = Empty
		return nil
	}
	return g.setBarrierLocked(p)
}

// Clear returns p to Empty. Clearing the start or end cell removes that
// endpoint from the grid.
func (g *Grid) Clear(p Pos) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkEditLocked(p); err != nil {
		return err
	}
	if g.hasStart && g.start == p {
		g.hasStart = false
	}
	if g.hasEnd && g.end == p {
		g.hasEnd = false
	}
	g.cells[g.Index(p)] = Empty
	return nil
}

// Place applies the point-and-click placement cycle: the first placement
// sets the start, the next sets the end, and later ones add barriers.
// Placing onto the start or end cell does nothing. It returns the state
// that p holds afterwards.
func (g *Grid) Place(p Pos) (State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.checkEditLocked(p); err != nil {
		return Empty, err
	}
	switch cur := g.cells[g.Index(p)]; {
	case cur == Start || cur == End:
		return cur, nil
	case !g.hasStart:
		g.cells[g.Index(p)] = Start
		g.start, g.hasStart = p, true
	case !g.hasEnd:
		g.cells[g.Index(p)] = End
		g.end, g.hasEnd = p, true
	default:
		g.cells[g.Index(p)] = Barrier
	}
	return g.cells[g.Index(p)], nil
}

func (g *Grid) setBarrierLocked(p Pos) error {
	switch g.cells[g.Index(p)] {
	case Start, End:
		return errors.New(errors.ErrCodeConflict, "%s holds the %s cell", p, g.cells[g.Index(p)])
	}
	g.cells[g.Index(p)] = Barrier
	return nil
}

func (g *Grid) checkEditLocked(p Pos) error {
	if err := g.editableLocked(); err != nil {
		return err
	}
	if !g.InBounds(p) {
		return errors.New(errors.ErrCodeOutOfBounds, "%s is outside the %dx%d grid", p, g.rows, g.cols)
	}
	return nil
}
