package solver

import (
	"time"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/grid"
	"github.com/matzehuels/gridpath/pkg/search"
)

// ErrStepLimit is the cause wrapped in ABORTED when a search closes more
// than Request.StepLimit cells.
var ErrStepLimit = errors.New(errors.ErrCodeAborted, "step limit reached")

// Request describes one solve.
type Request struct {
	// Grid holds one text row per element (see grid.Parse for the symbols).
	Grid []string `json:"grid"`

	// Mode defaults to A* when omitted from JSON.
	Mode search.Mode `json:"mode"`

	// StepLimit caps the number of cells marked Closed; zero means unlimited.
	StepLimit int `json:"step_limit,omitempty"`

	// Refresh skips the cache lookup but still stores the new result.
	Refresh bool `json:"-"`

	// OnStep observes the search. Requests with an observer or a step limit
	// always run the search and bypass the cache.
	OnStep search.StepFunc `json:"-"`
}

// Response is the outcome of a solve, shared by the CLI and the HTTP API.
type Response struct {
	RunID    string        `json:"run_id"`
	Status   search.Status `json:"status"`
	Mode     search.Mode   `json:"mode"`
	Length   int           `json:"length"`
	Expanded int           `json:"expanded"`
	Opened   int           `json:"opened"`

	// Path is [[row, col], ...] from start to end; empty when not found.
	Path [][2]int `json:"path"`

	// Grid is the annotated grid after the search.
	Grid []string `json:"grid"`

	// Cached is true when the result came from the cache.
	Cached bool `json:"cached"`

	// Duration is the search time; zero for cached results.
	Duration time.Duration `json:"-"`
}

// Found reports whether a path was found.
func (r *Response) Found() bool { return r.Status == search.Found }

func newResponse(runID string, res search.Result, g *grid.Grid) *Response {
	path := make([][2]int, len(res.Path))
	for i, p := range res.Path {
		path[i] = [2]int{p.Row, p.Col}
	}
	return &Response{
		RunID:    runID,
		Status:   res.Status,
		Mode:     res.Mode,
		Length:   res.Length,
		Expanded: res.Expanded,
		Opened:   res.Opened,
		Path:     path,
		Grid:     g.Lines(),
	}
}

// ValidateAndSetDefaults checks the request fields that do not need the grid.
func (r *Request) ValidateAndSetDefaults() error {
	if len(r.Grid) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grid is required")
	}
	if !r.Mode.Valid() {
		return errors.New(errors.ErrCodeInvalidMode, "invalid search mode %d", uint8(r.Mode))
	}
	return errors.ValidateStepLimit(r.StepLimit)
}

func (r *Request) cacheable() bool {
	return r.OnStep == nil && r.StepLimit == 0
}
