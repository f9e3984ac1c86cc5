package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/collage/pkg/catalog"
	"github.com/matzehuels/collage/pkg/server"
)

// serveCommand creates the serve command for the HTTP preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		catalogPath string
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and renders over HTTP",
		Long: `Serve layouts and renders over HTTP.

Every request recomputes its layout, so edits to the catalog show up on the
next request. With --watch the catalog file is reloaded as soon as it changes.

Routes:
  GET /healthz
  GET /api/presets
  GET /api/presets/{name}
  GET /api/catalog?category=
  GET /api/catalog/projects/{slug}
  GET /api/layout/{preset}?category=&project=
  GET /render/{preset}.{format}?category=&project=&focus=&width=&images=`,
		Example: `  collage serve --addr :9000 --catalog gallery.yaml --watch`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.config != nil {
				if !cmd.Flags().Changed("addr") {
					addr = c.config.GetString(cfgKeyAddr)
				}
				if !cmd.Flags().Changed("catalog") {
					catalogPath = c.config.GetString(cfgKeyCatalog)
				}
			}
			return c.runServe(cmd.Context(), addr, catalogPath, watch)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (.json, .yaml, .toml); built-in catalog if empty")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the catalog file when it changes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, catalogPath string, watch bool) error {
	src := server.NewCatalogSource(catalog.Default())
	if catalogPath != "" {
		var err error
		if src, err = server.LoadCatalogSource(catalogPath); err != nil {
			return err
		}
	} else if watch {
		c.Logger.Warn("--watch needs --catalog, serving the built-in catalog")
		watch = false
	}

	srv := server.New(
		server.WithAddr(addr),
		server.WithLogger(c.Logger),
		server.WithCatalogSource(src),
	)

	g, ctx := errgroup.WithContext(ctx)
	if watch {
		g.Go(func() error { return src.Watch(ctx, c.Logger) })
	}
	g.Go(func() error { return srv.ListenAndServe(ctx) })
	return g.Wait()
}
