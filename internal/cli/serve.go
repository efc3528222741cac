package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/astrolabe/internal/api"
	"github.com/matzehuels/astrolabe/pkg/placement"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the placement and layout HTTP API",
		Long: `Serve answers placement and layout requests over JSON HTTP until
interrupted. The default strategy and layout settings come from the config
file; requests may override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			strategy, err := placement.ParseStrategy(cfg.Strategy)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.New(runner, c.Logger, api.Options{
				Strategy:        strategy,
				Layout:          cfg.Layout,
				ReadTimeout:     cfg.Server.ReadTimeout.Duration,
				WriteTimeout:    cfg.Server.WriteTimeout.Duration,
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
			})

			c.Logger.Debug("starting server", "cache", cacheLabel(cfg.Cache.Backend, noCache), "layout", cfg.Layout)
			return srv.Serve(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")

	return cmd
}

func cacheLabel(backend string, disabled bool) string {
	if disabled {
		return "none"
	}
	return backend
}
