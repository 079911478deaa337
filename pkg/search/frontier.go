package search

import (
	"container/heap"

	"github.com/matzehuels/gridpath/pkg/grid"
)

// entry is one frontier slot. rank and seq are fixed at insertion.
type entry struct {
	rank int
	seq  int
	pos  grid.Pos
}

// less orders entries by (rank, seq, row, col).
func (a *entry) less(b *entry) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	if a.seq != b.seq {
		return a.seq < b.seq
	}
	if a.pos.Row != b.pos.Row {
		return a.pos.Row < b.pos.Row
	}
	return a.pos.Col < b.pos.Col
}

// frontier is a binary min-heap of entries with an index-addressed
// membership table.
type frontier struct {
	items  []*entry
	member []*entry // by grid index; nil when not enqueued
	cols   int
}

func newFrontier(g *grid.Grid) *frontier {
	return &frontier{
		member: make([]*entry, g.Len()),
		cols:   g.Cols(),
	}
}

// heap.Interface

func (f *frontier) Len() int           { return len(f.items) }
func (f *frontier) Less(i, j int) bool { return f.items[i].less(f.items[j]) }

func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }
func (f *frontier) Push(x any)    { f.items = append(f.items, x.(*entry)) }

func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	f.items = old[:n-1]
	return e
}

// push enqueues p and records membership.
func (f *frontier) push(p grid.Pos, rank, seq int) {
	e := &entry{rank: rank, seq: seq, pos: p}
	heap.Push(f, e)
	f.member[f.slot(p)] = e
}

// pop removes the minimum entry and clears its membership.
func (f *frontier) pop() *entry {
	e := heap.Pop(f).(*entry)
	f.member[f.slot(e.pos)] = nil
	return e
}

// contains reports whether p is currently enqueued.
func (f *frontier) contains(p grid.Pos) bool {
	return f.member[f.slot(p)] != nil
}

func (f *frontier) slot(p grid.Pos) int {
	return p.Row*f.cols + p.Col
}
