package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpath/pkg/grid"
	"github.com/matzehuels/gridpath/pkg/search"
	"github.com/matzehuels/gridpath/pkg/solver"
)

// ErrNoPath is returned by solve --fail-on-missing when the end is
// unreachable. main maps it to exit code 2.
var ErrNoPath = errors.New("no path between start and end")

// solveOpts holds flags for the solve command.
type solveOpts struct {
	mode          string
	trace         bool
	stepLimit     int
	quiet         bool
	json          bool
	failOnMissing bool
	noCache       bool
	refresh       bool
}

func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Find the shortest path on a text grid",
		Long: `Solve reads a text grid (use - for stdin), searches from S to E and
prints the grid annotated with open (o), closed (x) and path (*) cells.

Reaching no path is a normal result and exits 0 unless --fail-on-missing
is set.`,
		Example: `  gridpath solve maze.txt
  gridpath solve maze.txt --mode dijkstra --trace
  cat maze.txt | gridpath solve - --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), cmd.InOrStdin(), args[0], opts, cmd.Flags().Changed("mode"))
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", search.AStar.String(), "search mode: astar or dijkstra")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "print every open/closed/path step")
	cmd.Flags().IntVar(&opts.stepLimit, "step-limit", 0, "abort after N closed cells (0 = unlimited)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the status line")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.failOnMissing, "fail-on-missing", false, "exit 2 when no path exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and re-run")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, stdin io.Reader, path string, opts solveOpts, modeSet bool) error {
	mode, err := c.resolveMode(opts.mode, modeSet)
	if err != nil {
		return err
	}
	lines, err := readGridLines(stdin, path)
	if err != nil {
		return err
	}

	runner, closeCache, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer closeCache()

	req := solver.Request{
		Grid:      lines,
		Mode:      mode,
		StepLimit: opts.stepLimit,
		Refresh:   opts.refresh,
	}
	if opts.trace {
		req.OnStep = func(p grid.Pos, s grid.State) error {
			printStep(c.out, s.String(), p.Row, p.Col)
			return nil
		}
	}

	prog := newProgress(loggerFromContext(ctx))
	resp, err := runner.Solve(ctx, req)
	if err != nil {
		return err
	}
	prog.done("solve finished", "run_id", resp.RunID)

	if opts.json {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		c.printResponse(resp, opts.quiet)
	}

	if opts.failOnMissing && !resp.Found() {
		return ErrNoPath
	}
	return nil
}

// printResponse writes the status line, counters and (unless quiet) the
// annotated grid.
func (c *CLI) printResponse(resp *solver.Response, quiet bool) {
	if resp.Found() {
		printSuccess(c.out, "%s: path found, length %s", resp.Mode, StyleNumber.Render(fmt.Sprint(resp.Length)))
	} else {
		printWarning(c.out, "%s: no path", resp.Mode)
	}
	if quiet {
		return
	}

	var elapsed string
	if !resp.Cached {
		elapsed = resp.Duration.Round(time.Microsecond).String()
	}
	printStats(c.out, resp.Expanded, resp.Opened, resp.Cached, elapsed)
	fmt.Fprintln(c.out)
	printGrid(c.out, resp.Grid)
}

// resolveMode prefers an explicit --mode over the configured default.
func (c *CLI) resolveMode(flag string, set bool) (search.Mode, error) {
	if !set {
		return c.Config.Mode, nil
	}
	return search.ParseMode(flag)
}

// readGridLines parses path ("-" for stdin) and returns its rows in the
// canonical text form accepted by solver.Request.
func readGridLines(stdin io.Reader, path string) ([]string, error) {
	if path == "-" {
		g, err := grid.Parse(stdin)
		if err != nil {
			return nil, fmt.Errorf("parse stdin: %w", err)
		}
		return g.Lines(), nil
	}
	g, err := grid.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return g.Lines(), nil
}
