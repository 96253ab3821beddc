package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/unitconv/internal/cli"
	"github.com/aretw0/unitconv/internal/metrics"
	httpAdapter "github.com/aretw0/unitconv/pkg/adapters/http"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Hosts converter sessions over a JSON API with server-sent state diffs.
Sessions live in the configured store; Prometheus metrics are served at /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}
		debug, _ := cmd.Flags().GetBool("debug")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		backend, err := cli.OpenBackend(sigCtx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		m := metrics.New()
		hooks := []domain.LifecycleHooks{m.Hooks()}
		if debug {
			hooks = append(hooks, cli.DebugHooks(logger))
		}
		converter := cli.NewConverter(backend, logger, hooks...)

		handler := httpAdapter.NewHandler(converter.Manager(),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(m.Handler()),
			httpAdapter.WithConversionObserver(m.ObserveConversion),
		)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting unitconv server", "address", srv.Addr, "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sigCtx.Done():
			logger.Info("Start shutdown", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", cfg.HTTP.ShutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("unitconv server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides config)")
}
