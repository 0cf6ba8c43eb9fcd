package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resuexpress/internal/server"
	"github.com/jonathan/resuexpress/internal/server/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	var (
		addr      string
		rateLimit int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wizard over HTTP",
		Long: "Start an HTTP server exposing the wizard operations as a JSON API, " +
			"live preview updates on /events and Prometheus metrics on /metrics.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx, rateLimit)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Address to listen on (default from config, 127.0.0.1:8080)")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", ratelimit.DefaultLimit, "Edits per minute allowed per client; 0 disables limiting")
	return cmd
}

func (c *cli) serve(ctx context.Context, rateLimit int) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.metrics.RegisterCollectors(reg)

	broker := server.NewBroker()
	ws, err := c.open(ctx, broker)
	if err != nil {
		broker.Close()
		return err
	}
	defer ws.store.Close()

	limits := ratelimit.DefaultConfig()
	limits.Limit = rateLimit

	srv := server.New(ws.session, broker, server.Config{
		Addr:       c.cfg.Addr,
		Logger:     c.logger,
		Gatherer:   reg,
		Stylesheet: ws.sheet,
		RateLimit:  limits,
	})
	return srv.Start(ctx)
}
