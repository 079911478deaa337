package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/search"
	"github.com/matzehuels/gridpath/pkg/solver"
)

func (c *CLI) compareCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "compare FILE",
		Short: "Run A* and Dijkstra on the same grid",
		Long: `Compare solves the grid once per search mode and tabulates how many
cells each mode expanded. Both modes find shortest paths, so a length
mismatch is reported as an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(cmd.Context(), cmd.InOrStdin(), args[0], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}

func (c *CLI) runCompare(ctx context.Context, stdin io.Reader, path string, noCache bool) error {
	lines, err := readGridLines(stdin, path)
	if err != nil {
		return err
	}

	runner, closeCache, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer closeCache()

	results := make([]*solver.Response, 0, len(search.Modes))
	for _, mode := range search.Modes {
		resp, err := runner.Solve(ctx, solver.Request{Grid: lines, Mode: mode})
		if err != nil {
			return fmt.Errorf("%s: %w", mode, err)
		}
		results = append(results, resp)
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		length := "-"
		if r.Found() {
			length = strconv.Itoa(r.Length)
		}
		rows[i] = []string{
			r.Mode.String(),
			r.Status.String(),
			length,
			strconv.Itoa(r.Expanded),
			strconv.Itoa(r.Opened),
			strconv.FormatBool(r.Cached),
		}
	}
	fmt.Fprintln(c.out, renderTable([]string{"mode", "status", "length", "expanded", "opened", "cached"}, rows))

	if err := agree(results); err != nil {
		printError(c.out, "%s", err)
		return err
	}
	printSuccess(c.out, "modes agree")
	return nil
}

// agree checks that every mode reached the same status and path length.
func agree(results []*solver.Response) error {
	first := results[0]
	for _, r := range results[1:] {
		if r.Status != first.Status || r.Length != first.Length {
			return errors.New(errors.ErrCodeInternal, "%s and %s disagree: %s/%d vs %s/%d",
				first.Mode, r.Mode, first.Status, first.Length, r.Status, r.Length)
		}
	}
	return nil
}
