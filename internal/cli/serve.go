package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ashcraft-tech/contact-api/internal/server"
	"github.com/ashcraft-tech/contact-api/internal/tasks"
	"github.com/ashcraft-tech/contact-api/internal/telemetry"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)

	shutdownTracing, err := telemetry.Setup(ctx, server.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Warn("Tracing disabled: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Error("Failed to create server: %v", err)
		return err
	}
	if err := srv.Init(); err != nil {
		logger.Error("Failed to initialize server: %v", err)
		return err
	}

	sweep := tasks.NewRateLimitSweep(srv.Limiter(), cfg.RateLimit.SweepInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		return sweep.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped: %v", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}
