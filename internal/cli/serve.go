package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tocview/internal/server"
	tocio "github.com/matzehuels/tocview/pkg/io"
	"github.com/matzehuels/tocview/pkg/observability"
	"github.com/matzehuels/tocview/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var metrics bool

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve diagrams over HTTP",
		Long: `Serve the diagrams in a directory (or a MongoDB collection, see
[store] mongo_uri in the config file) over HTTP.

Open /diagrams/<name>/svg in a browser and click nodes to pin them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c.config.Store.Dir = args[0]
			}
			if cmd.Flags().Changed("addr") {
				c.config.Server.Addr = addr
			}
			if cmd.Flags().Changed("metrics") {
				c.config.Server.Metrics = metrics
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "expose Prometheus metrics on /metrics")
	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := server.Config{
		Addr:   c.config.Server.Addr,
		Store:  st,
		Logger: logger,
	}

	if c.config.Server.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		observability.NewPrometheus(reg).Register()
		defer observability.Reset()
		cfg.Gatherer = reg
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()
	cfg.Runner = runner

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	printSuccess("Serving diagrams on http://%s", srv.Addr())
	printDetail("Store: %s", c.storeDescription())
	if cfg.Gatherer != nil {
		printDetail("Metrics: http://%s/metrics", srv.Addr())
	}
	return srv.ListenAndServe(ctx)
}

// openStore opens the diagram store selected by the config.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	sc := c.config.Store
	if sc.MongoURI != "" {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        sc.MongoURI,
			Database:   sc.MongoDatabase,
			Collection: sc.MongoCollection,
		})
	}
	format, err := tocio.ParseFormat(sc.Format)
	if err != nil {
		return nil, err
	}
	return store.NewDirStore(sc.Dir, format)
}

func (c *CLI) storeDescription() string {
	if c.config.Store.MongoURI != "" {
		db := c.config.Store.MongoDatabase
		if db == "" {
			db = "tocview"
		}
		return "mongodb database " + db
	}
	return c.config.Store.Dir
}
