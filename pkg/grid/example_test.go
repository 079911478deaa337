package grid_test

import (
	"fmt"

	"github.com/matzehuels/gridpath/pkg/grid"
)

func ExampleGrid_Place() {
	g, _ := grid.New(2, 3)
	for _, p := range []grid.Pos{{Row: 0, Col: 0}, {Row: 1, Col: 2}, {Row: 0, Col: 1}} {
		s, _ := g.Place(p)
		fmt.Println(p, s)
	}
	fmt.Print(g)
	// Output:
	// (0,0) start
	// (1,2) end
	// (0,1) barrier
	// S # .
	// . . E
}

func ExampleParse() {
	g, err := grid.ParseString("S.#\n..E\n")
	if err != nil {
		fmt.Println(err)
		return
	}
	start, _ := g.Start()
	end, _ := g.End()
	fmt.Println("size:", g.Rows(), "x", g.Cols())
	fmt.Println("start:", start, "end:", end)
	fmt.Println("neighbors of start:", len(g.Neighbors(start)))
	// Output:
	// size: 2 x 3
	// start: (0,0) end: (1,2)
	// neighbors of start: 2
}
