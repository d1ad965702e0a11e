package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramkit/internal/server"
	"github.com/matzehuels/diagramkit/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the translation HTTP API",
		Long: `Serve exposes the pipeline over HTTP:

  POST /v1/translate   translate one diagram
  POST /v1/batch       translate several diagrams concurrently
  POST /v1/validate    validate an Excalidraw document
  GET  /healthz        liveness and build info
  GET  /metrics        Prometheus metrics

The server shuts down gracefully when interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			metrics := observability.NewMetrics()
			observability.SetPipelineHooks(metrics)
			observability.SetCacheHooks(metrics)
			observability.SetHTTPHooks(metrics)

			printInfo("Listening on %s", StyleHighlight.Render(cfg.Server.Addr))
			return server.New(runner, cfg, c.Logger, metrics).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
