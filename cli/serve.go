package cli

import (
	"context"
	"errors"
	"local-notes/config/setup"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(e *env) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				e.cfg.Port = port
			}

			store, err := setup.InitStore(cmd.Context(), e.cfg, e.logger)
			if err != nil {
				return err
			}
			application := setup.InitApp(store, e.cfg, e.logger)
			defer setup.Shutdown(application, e.logger)

			server := setup.NewServer(application, e.cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				e.logger.Info("starting server", "port", e.cfg.Port, "env", e.cfg.Env)
				return server.Listen(":" + e.cfg.Port)
			})

			g.Go(func() error {
				<-gctx.Done()
				e.logger.Info("shutting down server gracefully")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return server.ShutdownWithContext(shutdownCtx)
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			e.logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")
	return cmd
}
