package grid

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/gridpath/pkg/errors"
)

// MaxLineBytes bounds a single input line, whitespace included.
const MaxLineBytes = 1 << 20

// Parse reads a text grid from r.
//
// The format has one row per line and one symbol per cell:
//
//	S . . # .
//	. # . . .
//	. # E . .
//
// Symbols are '.' (empty), '#' (barrier), 'S' (start), 'E' (end), 'o' (open),
// 'x' (closed) and '*' (path). Spaces and tabs between symbols are ignored,
// so "S..#." and "S . . # ." describe the same row. Blank lines and lines
// starting with ';' are skipped.
//
// Parse returns INVALID_FORMAT for unknown symbols, ragged rows, a second
// start or end, or input with no rows, and INVALID_SIZE when the grid is too
// large or a line is longer than MaxLineBytes. Parse does not close r.
func Parse(r io.Reader) (*Grid, error) {
	var rows [][]State
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, ";") {
			continue
		}
		var row []State
		for i := 0; i < len(text); i++ {
			b := text[i]
			if b == ' ' || b == '\t' {
				continue
			}
			s, ok := StateForSymbol(b)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: unknown symbol %q", line, b)
			}
			row = append(row, s)
			if len(row) > errors.MaxGridSide {
				return nil, errors.New(errors.ErrCodeInvalidSize,
					"line %d: more than %d cells", line, errors.MaxGridSide)
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"line %d: row has %d cells, expected %d", line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
		if len(rows) > errors.MaxGridSide {
			return nil, errors.New(errors.ErrCodeInvalidSize, "more than %d rows", errors.MaxGridSide)
		}
	}
	if err := sc.Err(); err != nil {
		if stderrors.Is(err, bufio.ErrTooLong) {
			return nil, errors.Wrap(errors.ErrCodeInvalidSize, err, "line %d: longer than %d bytes", line+1, MaxLineBytes)
		}
		return nil, fmt.Errorf("read grid: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "grid has no rows")
	}

	g, err := New(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c, s := range row {
			p := Pos{Row: r, Col: c}
			switch s {
			case Start:
				if g.hasStart {
					return nil, errors.New(errors.ErrCodeInvalidFormat, "second start at %s (first at %s)", p, g.start)
				}
				g.start, g.hasStart = p, true
			case End:
				if g.hasEnd {
					return nil, errors.New(errors.ErrCodeInvalidFormat, "second end at %s (first at %s)", p, g.end)
				}
				g.end, g.hasEnd = p, true
			}
			g.cells[g.Index(p)] = s
		}
	}
	return g, nil
}

// ParseString is a convenience wrapper around [Parse].
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

// ParseLines parses one string per row, as received in JSON requests.
func ParseLines(lines []string) (*Grid, error) {
	return ParseString(strings.Join(lines, "\n"))
}

// ReadFile parses the text grid stored at path.
func ReadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

// Lines returns the grid as one symbol string per row, space separated.
func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	var buf bytes.Buffer
	for r := 0; r < g.rows; r++ {
		buf.Reset()
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteByte(g.cells[r*g.cols+c].Symbol())
		}
		out[r] = buf.String()
	}
	return out
}

// Format writes the grid in the text format accepted by [Parse].
func (g *Grid) Format(w io.Writer) error {
	for _, line := range g.Lines() {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// String returns the grid in text format.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n") + "\n"
}
