package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/gallerywall/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layout generation over HTTP",
		Long: `Serve layout generation over HTTP.

POST /api/generate takes a GENERATE message and streams the SOLUTION_FOUND
messages followed by DONE or ERROR, one JSON object per line. Metrics are
exposed on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.config.ListenAddr != "" {
				addr = c.config.ListenAddr
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			srv := server.New(c.newOrchestrator(logger, 0), logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
