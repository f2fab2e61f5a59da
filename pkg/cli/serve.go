package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpctrl "github.com/ccimar11/riskmap/pkg/controller/http"
	"github.com/ccimar11/riskmap/pkg/utils/async"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe(a *app) *cli.Command {
	var addr string

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the JSON API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "HTTP server address",
				Value:       ":8080",
				Sources:     cli.EnvVars("RISKMAP_ADDR"),
				Destination: &addr,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			errCh := async.Go(ctx, func(ctx context.Context) error {
				logging.Default().Info("Starting HTTP server", "addr", addr, "backend", a.storage.Backend())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
				return nil
			})

			// Wait for shutdown signal, server error or cancellation
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			case <-ctx.Done():
				logging.Default().Info("Context cancelled, shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
