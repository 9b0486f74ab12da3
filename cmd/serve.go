package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"recipeapp.com/internal/api"
	"recipeapp.com/internal/engine"
	"recipeapp.com/internal/infra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	// 1. config, logger, database
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer db.Close()

	// 2. redis backs token revocation
	rdb := infra.NewRedisClient(cfg.Redis)
	defer rdb.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// 3. services
	eng, err := engine.NewEngine(cfg, db.DB, rdb)
	if err != nil {
		return err
	}
	eng.Start()
	defer eng.Stop()

	// 4. HTTP server
	app := api.NewServer(eng, api.Options{AccessLog: true})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		errCh <- app.Listen(cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Server shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return app.ShutdownWithContext(shutdownCtx)
}
