package search

import (
	"slices"

	"github.com/matzehuels/gridpath/pkg/grid"
)

// reconstruct walks the predecessor chain back from the end. Every
// predecessor except the start is marked Path, in end→start order, with one
// step notification each. The returned path runs start→end.
func (r *runner) reconstruct() ([]grid.Pos, error) {
	path := []grid.Pos{r.end}
	cur := r.end
	for {
		prev, ok := r.cameFrom[cur]
		if !ok {
			break
		}
		if prev != r.start {
			r.g.Mark(prev, grid.Path)
			if err := r.step(prev, grid.Path); err != nil {
				return nil, err
			}
		}
		path = append(path, prev)
		cur = prev
	}
	slices.Reverse(path)
	return path, nil
}
