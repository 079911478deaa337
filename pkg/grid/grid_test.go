package grid

import (
	"testing"

	"github.com/matzehuels/gridpath/pkg/errors"
)

func mustNew(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := New(rows, cols)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", rows, cols, err)
	}
	return g
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantErr    bool
	}{
		{"square", 5, 5, false},
		{"single row", 1, 5, false},
		{"single cell", 1, 1, false},
		{"zero rows", 0, 5, true},
		{"negative cols", 3, -1, true},
		{"too large", errors.MaxGridSide + 1, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.rows, tt.cols)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidSize) {
					t.Fatalf("New(%d, %d) error = %v, want INVALID_SIZE", tt.rows, tt.cols, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d, %d): %v", tt.rows, tt.cols, err)
			}
			if g.Rows() != tt.rows || g.Cols() != tt.cols || g.Len() != tt.rows*tt.cols {
				t.Errorf("got %dx%d (%d cells)", g.Rows(), g.Cols(), g.Len())
			}
			if n := g.Count(Empty); n != g.Len() {
				t.Errorf("Count(Empty) = %d, want %d", n, g.Len())
			}
		})
	}
}

func TestNeighborsOrder(t *testing.T) {
	g := mustNew(t, 3, 3)
	got := g.Neighbors(Pos{1, 1})
	want := []Pos{{2, 1}, {0, 1}, {1, 0}, {1, 2}}
	if len(got) != len(want) {
		t.Fatalf("got %d neighbors, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.Pos != want[i] {
			t.Errorf("neighbor %d = %v, want %v", i, c.Pos, want[i])
		}
	}
}

func TestNeighborsSkipBarriersAndEdges(t *testing.T) {
	g := mustNew(t, 3, 3)
	if err := g.SetBarrier(Pos{1, 0}); err != nil {
		t.Fatal(err)
	}

	got := g.Neighbors(Pos{0, 0})
	if len(got) != 1 || got[0].Pos != (Pos{0, 1}) {
		t.Fatalf("Neighbors(0,0) = %v, want only (0,1)", got)
	}

	// Adjacency follows edits immediately.
	if err := g.ToggleBarrier(Pos{1, 0}); err != nil {
		t.Fatal(err)
	}
	if got := g.Neighbors(Pos{0, 0}); len(got) != 2 {
		t.Errorf("after toggle: %d neighbors, want 2", len(got))
	}
}

func TestStateOutOfBounds(t *testing.T) {
	g := mustNew(t, 2, 2)
	if s := g.State(Pos{-1, 0}); s != Barrier {
		t.Errorf("State(-1,0) = %v, want barrier", s)
	}
	if _, ok := g.At(Pos{2, 0}); ok {
		t.Error("At(2,0) should report out of bounds")
	}
	c, ok := g.At(Pos{1, 1})
	if !ok || c.State != Empty || c.Pos != (Pos{1, 1}) {
		t.Errorf("At(1,1) = %+v, %v", c, ok)
	}
}

func TestIndexRoundTrip(t *testing.T) {
	g := mustNew(t, 3, 4)
	for i := 0; i < g.Len(); i++ {
		if got := g.Index(g.PosOf(i)); got != i {
			t.Errorf("Index(PosOf(%d)) = %d", i, got)
		}
	}
}

func TestReset(t *testing.T) {
	g := mustNew(t, 3, 3)
	_ = g.SetStart(Pos{0, 0})
	_ = g.SetEnd(Pos{2, 2})
	_ = g.SetBarrier(Pos{1, 1})

	if err := g.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if n := g.Count(Empty); n != 9 {
		t.Errorf("Count(Empty) = %d, want 9", n)
	}
	if _, ok := g.Start(); ok {
		t.Error("start should be forgotten")
	}
	if _, ok := g.End(); ok {
		t.Error("end should be forgotten")
	}
}

func TestResetSearch(t *testing.T) {
	g := mustNew(t, 2, 3)
	_ = g.SetStart(Pos{0, 0})
	_ = g.SetEnd(Pos{1, 2})
	_ = g.SetBarrier(Pos{0, 1})
	g.Mark(Pos{1, 0}, Closed)
	g.Mark(Pos{1, 1}, Path)
	g.Mark(Pos{0, 2}, Open)
	g.Mark(Pos{0, 0}, Closed)

	if err := g.ResetSearch(); err != nil {
		t.Fatalf("ResetSearch: %v", err)
	}
	want := "S # .\n. . E\n"
	if got := g.String(); got != want {
		t.Errorf("after ResetSearch:\n%s\nwant:\n%s", got, want)
	}
}

func TestBeginSearchExclusive(t *testing.T) {
	g := mustNew(t, 2, 2)
	if err := g.BeginSearch(); err != nil {
		t.Fatalf("BeginSearch: %v", err)
	}
	if !g.Busy() {
		t.Error("grid should be busy")
	}
	if err := g.BeginSearch(); !errors.Is(err, errors.ErrCodeGridBusy) {
		t.Errorf("second BeginSearch error = %v, want GRID_BUSY", err)
	}
	if err := g.Reset(); !errors.Is(err, errors.ErrCodeGridBusy) {
		t.Errorf("Reset while busy error = %v, want GRID_BUSY", err)
	}
	g.EndSearch()
	if g.Busy() {
		t.Error("grid should be free after EndSearch")
	}
	if err := g.Reset(); err != nil {
		t.Errorf("Reset after EndSearch: %v", err)
	}
}

func TestClone(t *testing.T) {
	g := mustNew(t, 2, 2)
	_ = g.SetStart(Pos{0, 0})
	_ = g.BeginSearch()
	defer g.EndSearch()

	cp := g.Clone()
	if cp.Busy() {
		t.Error("clone should not inherit the busy mark")
	}
	if err := cp.SetBarrier(Pos{1, 1}); err != nil {
		t.Fatalf("SetBarrier on clone: %v", err)
	}
	if g.State(Pos{1, 1}) != Empty {
		t.Error("editing the clone changed the original")
	}
	if p, ok := cp.Start(); !ok || p != (Pos{0, 0}) {
		t.Errorf("clone start = %v, %v", p, ok)
	}
}

func TestStateSymbols(t *testing.T) {
	for s := Empty; s <= Path; s++ {
		got, ok := StateForSymbol(s.Symbol())
		if !ok || got != s {
			t.Errorf("StateForSymbol(%q) = %v, %v; want %v", s.Symbol(), got, ok, s)
		}
	}
	if _, ok := StateForSymbol('?'); ok {
		t.Error("'?' should not map to a state")
	}
	if got := State(42).String(); got != "State(42)" {
		t.Errorf("unknown state String() = %q", got)
	}
}

func TestManhattan(t *testing.T) {
	if d := (Pos{0, 0}).Manhattan(Pos{4, 4}); d != 8 {
		t.Errorf("Manhattan = %d, want 8", d)
	}
	if d := (Pos{3, 1}).Manhattan(Pos{1, 4}); d != 5 {
		t.Errorf("Manhattan = %d, want 5", d)
	}
}
