// Command sample serves a small user API built with package web.
//
// Run:
//
//	go run ./cmd/sample serve
//	go run ./cmd/sample serve --config sample.yaml --addr :9090
//
// Then explore:
//
//	GET    http://localhost:8080/v1/health
//	GET    http://localhost:8080/v1/users?role=admin&limit=10
//	POST   http://localhost:8080/v1/users
//	GET    http://localhost:8080/v1/users/{id}
//	PUT    http://localhost:8080/v1/users/{id}
//	DELETE http://localhost:8080/v1/users/{id}
//	GET    http://localhost:8080/v1/users/{id}/avatar
//	PUT    http://localhost:8080/v1/users/{id}/avatar
//	GET    http://localhost:8080/metrics
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/bjaus/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample user API",
	}
	rootCmd.AddCommand(newServeCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func newServeCmd() *cobra.Command {
	var (
		configFile string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the user API",
		Long: `Serve the user API until interrupted.

Examples:
  sample serve
  sample serve --addr :9090
  sample serve --config sample.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := web.DefaultConfig()
			if configFile != "" {
				loaded, err := web.LoadConfig(configFile)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			level, err := cfg.Level()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			reg := prometheus.NewRegistry()
			r := newRouter(cfg, logger, reg, newUserStore())

			logger.Info("listening", "addr", cfg.Addr, "routes", len(r.Routes()))
			return r.ListenAndServe(cmd.Context(), cfg.Addr)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (overrides the config file)")
	return cmd
}

func newRouter(cfg web.Config, logger *slog.Logger, reg *prometheus.Registry, store *userStore) *web.Router {
	r := web.New(cfg.RouterOptions(logger)...)
	r.Use(cfg.Transforms(logger, reg)...)

	if cfg.MetricsPath != "" {
		web.Raw(r, http.MethodGet, cfg.MetricsPath, web.MetricsHandler(reg))
	}

	v1 := r.Group("/v1")
	registerUsers(v1, store)
	return r
}
