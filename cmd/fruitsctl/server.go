package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/config"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/logging"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/endpoints"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/views"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the fruits application server",
	Long: `Run the fruits application server.

The database is chosen by the scheme of DATABASE_URL. If the database cannot
be reached the server still starts, logs the failure and answers every fruit
request with the error.

Example:
  fruitsctl server
  fruitsctl server --port 3000 --bind-address 127.0.0.1`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetString("port")
		}
		if cmd.Flags().Changed("bind-address") {
			cfg.BindAddress, _ = cmd.Flags().GetString("bind-address")
		}

		if err := runServer(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", "", "server listen port (default $PORT)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (default $BIND_ADDRESS)")
}

func loadConfig() (*config.FruitsConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runServer(cfg *config.FruitsConfig) error {
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backing := openStores(ctx, cfg.DatabaseURL, logger)
	go reportConnectivity(ctx, backing, logger)

	renderer, err := newRenderer(ctx, cfg, logger)
	if err != nil {
		return err
	}

	s := server.NewServer(backing.Fruits, backing.Health, renderer, logger, cfg.BindAddress, cfg.Port)
	endpoints.RegisterAll(s)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", s.Addr()))
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	if err := backing.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close database", zap.Error(err))
	}
	return nil
}

// reportConnectivity logs whether the database answers once at startup.
// The drivers connect lazily, so this is the first time a bad host shows up.
func reportConnectivity(ctx context.Context, backing *stores, logger *zap.Logger) {
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := backing.Health.CheckConnectivity(pingCtx); err != nil {
		logger.Error("Database is not reachable", zap.Error(err))
		return
	}
	logger.Info("Connected to database")
}

func newRenderer(ctx context.Context, cfg *config.FruitsConfig, logger *zap.Logger) (views.Renderer, error) {
	if cfg.ViewsDir == "" {
		return views.Embedded()
	}

	renderer, err := views.New(os.DirFS(cfg.ViewsDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load views from %s: %w", cfg.ViewsDir, err)
	}
	if cfg.WatchViews {
		go func() {
			if err := views.Watch(ctx, renderer, cfg.ViewsDir, logger); err != nil {
				logger.Error("Stopped watching views", zap.Error(err))
			}
		}()
	}
	return renderer, nil
}
