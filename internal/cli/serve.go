package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbit/pkg/observability"
	"github.com/matzehuels/orbit/pkg/server"
	"github.com/matzehuels/orbit/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Layouts are cached in Redis when cache.redis_url is set and stored in
MongoDB when server.mongo_uri is set; otherwise both live in memory or on
disk. Metrics are exposed at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := c.newStore(ctx)
	if err != nil {
		runner.Close()
		return fmt.Errorf("initialize store: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewPrometheus(reg)
	observability.SetPipelineHooks(prom)
	observability.SetCacheHooks(prom)
	observability.SetHTTPHooks(prom)
	defer observability.Reset()

	cfg := c.Config.Server
	srv := server.New(server.Config{
		Runner:          runner,
		Store:           st,
		Defaults:        c.options(nil, nil),
		Gatherer:        reg,
		Logger:          c.Logger,
		MaxBodyBytes:    cfg.MaxBodyBytes,
		ReadTimeout:     cfg.ReadTimeout.Duration,
		WriteTimeout:    cfg.WriteTimeout.Duration,
		ShutdownTimeout: cfg.ShutdownTimeout.Duration,
	})
	defer func() {
		if err := srv.Close(context.Background()); err != nil {
			c.Logger.Warn("close", "error", err)
		}
	}()

	printInfo("Serving on %s", addr)
	return srv.ListenAndServe(ctx, addr)
}

func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	cfg := c.Config.Server
	if cfg.MongoURI == "" {
		c.Logger.Debug("using in-memory layout store")
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, cfg.MongoURI, cfg.Database)
}
