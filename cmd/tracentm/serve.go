package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/tracentm/internal/cli"
	"github.com/aretw0/tracentm/internal/config"
	"github.com/aretw0/tracentm/internal/logging"
	httpAdapter "github.com/aretw0/tracentm/pkg/adapters/http"
	"github.com/aretw0/tracentm/pkg/observability"
	"github.com/aretw0/tracentm/pkg/service"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves every machine in --dir over a JSON HTTP API. Reports are kept in the
configured store and finished runs are streamed on /events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
			cfg.Server.Addr = addr
		}

		logger := logging.New(logging.ParseLevel(cfg.Log.Level))

		metrics := observability.NewMetrics()
		svc, closeStore, err := buildService(cfg, logger, metrics)
		if err != nil {
			return err
		}
		defer closeStore()

		opts := []httpAdapter.Option{
			httpAdapter.WithReports(svc),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithDefaultDepth(cfg.Depth.Default),
		}
		if cfg.Server.Metrics {
			opts = append(opts, httpAdapter.WithMetrics(metrics.Handler()))
		}

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           httpAdapter.NewHandler(svc, opts...),
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting tracentm server", "addr", srv.Addr, "machines", cfg.Machines.Path, "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil

		case <-ctx.Done():
			logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("tracentm server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}

// buildService wires loader, store and hooks from cfg. metrics may be nil.
func buildService(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*service.Service, func() error, error) {
	loader, err := cli.OpenLoader(cfg.Machines.Loader, cfg.Machines.Path)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := cli.OpenStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	hooks := observability.LoggingHooks(logger)
	if metrics != nil {
		hooks = observability.Combine(hooks, metrics.Hooks())
	}

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithLifecycleHooks(hooks),
		service.WithDepthLimit(cfg.Depth.Limit),
	}
	if store != nil {
		opts = append(opts, service.WithStore(store))
	}
	return service.New(loader, opts...), closeStore, nil
}
