package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/codelabs/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve articles and the selection wheel over HTTP",
		Long: `Start the HTTP server.

Articles are fetched on first request and kept in memory and in the
configured cache. The server stops gracefully on interrupt.`,
		Example: `  codelabs serve
  codelabs serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			store, err := c.newCache(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(c.newLibrary(cfg, store),
				server.WithLogger(c.Logger),
				server.WithWheelConfig(cfg.WheelConfig()),
				server.WithSectors(cfg.Wheel.Sectors),
			)
			printInfo("Serving %s on %s", StyleHighlight.Render(cfg.Repo().String()), StyleLink.Render(addr))
			return srv.ListenAndServe(ctx, addr, server.Timeouts{
				Read:     cfg.Server.ReadTimeout.Duration,
				Write:    cfg.Server.WriteTimeout.Duration,
				Shutdown: cfg.Server.ShutdownTimeout.Duration,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
