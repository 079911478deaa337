package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpath/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve starts an HTTP server with:

  POST /v1/solve          {"grid": ["S . .", ". # .", ". . E"], "mode": "astar"}
  GET  /v1/solve/stream   WebSocket, streams every search step
  GET  /healthz
  GET  /version

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.Serve
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, closeCache, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			srv := server.New(runner, loggerFromContext(ctx), server.Options{
				Addr:         cfg.Addr,
				ReadTimeout:  cfg.ReadTimeout.Duration,
				WriteTimeout: cfg.WriteTimeout.Duration,
				CORSOrigins:  cfg.CORSOrigins,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides [serve] addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}
