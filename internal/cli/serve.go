package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/familytower/pkg/api"
)

// serveCommand exposes the tree over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree over an HTTP JSON API",
		Long: `Serve the tree over HTTP. Members can be listed, added and edited, and
the diagram is available as a graph, as positions or rendered to SVG.
The server stops gracefully on Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, cfg, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer r.Close()

			opts := api.Options{
				Addr:            cfg.Server.Addr,
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
			}
			if addr != "" {
				opts.Addr = addr
			}
			printInfo("Serving %d members on %s", r.Tree.Len(), StyleLink.Render("http://"+displayAddr(opts.Addr)))
			return api.New(r, loggerFromContext(ctx)).ListenAndServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
