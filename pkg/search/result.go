package search

import (
	"fmt"

	"github.com/matzehuels/gridpath/pkg/grid"
)

// Status is the outcome of a completed search.
type Status uint8

const (
	// NotFound means the frontier emptied without reaching the end.
	// It is a normal result, not an error.
	NotFound Status = iota
	// Found means the end was reached and the path reconstructed.
	Found
)

func (s Status) String() string {
	if s == Found {
		return "found"
	}
	return "not_found"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "found":
		*s = Found
	case "not_found":
		*s = NotFound
	default:
		return fmt.Errorf("unknown search status %q", b)
	}
	return nil
}

// Result describes a finished search.
type Result struct {
	Status Status
	Mode   Mode

	// Path lists the cells from start to end inclusive. Nil unless Found.
	Path []grid.Pos

	// Length is the number of edges on Path (len(Path)-1), or 0.
	Length int

	// Expanded counts cells popped from the frontier.
	Expanded int

	// Opened counts cells pushed onto the frontier and marked Open.
	Opened int
}

// Found reports whether a path was found.
func (r Result) Found() bool { return r.Status == Found }
