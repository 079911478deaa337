package search

import (
	"strings"

	"github.com/matzehuels/gridpath/pkg/errors"
)

// Mode selects the search algorithm. It is passed explicitly to every
// search; there is no package-level default that can change mid-run.
type Mode uint8

const (
	// AStar ranks frontier cells by g + Manhattan distance to the end.
	AStar Mode = iota
	// Dijkstra ranks frontier cells by g alone.
	Dijkstra
)

// Modes lists every supported mode in display order.
var Modes = []Mode{AStar, Dijkstra}

// String returns the canonical lower-case name.
func (m Mode) String() string {
	switch m {
	case AStar:
		return "astar"
	case Dijkstra:
		return "dijkstra"
	}
	return "unknown"
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m == AStar || m == Dijkstra
}

// ParseMode accepts "astar", "a*" and "dijkstra" in any case.
// Anything else is INVALID_MODE.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "astar", "a*":
		return AStar, nil
	case "dijkstra":
		return Dijkstra, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidMode, "unknown search mode %q (want astar or dijkstra)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidMode, "cannot encode mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so modes can be read
// straight from JSON requests and TOML config.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
