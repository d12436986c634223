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

	"kanboard/internal/api"
	"kanboard/internal/daemon"
	"kanboard/internal/di"
	"kanboard/internal/infrastructure/config"
	"kanboard/internal/infrastructure/logging"
)

const shutdownTimeout = 10 * time.Second

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kanboardd",
	Short: "kanboard daemon",
	Long: `kanboardd owns the board and serves it to every client.

The CLI and TUI talk to it over a unix socket. When http.enabled is set the
same operations are served as a JSON API, with Prometheus metrics at
/metrics. Column changes in the config file are applied without a restart.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func main() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kanboardd: %v\n", err)
		os.Exit(1)
	}
}

func newLoader() (*config.Loader, error) {
	if configPath == "" {
		return config.NewLoader()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return config.NewLoaderAt(configPath, home), nil
}

func run() error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("failed to create config loader: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, cleanup, err := di.InitializeContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer cleanup()

	server := daemon.NewServer(cfg.Daemon.SocketPath(), container.Service, container.Store, logger.Named("daemon"))
	if err := server.Listen(); err != nil {
		return err
	}

	errChan := make(chan error, 2)
	go func() {
		if err := server.Serve(); err != nil {
			errChan <- err
		}
	}()

	var httpServer *http.Server
	if cfg.HTTP.Enabled {
		router := api.NewRouter(container.Service, container.Metrics, logger.Named("http"), cfg.HTTP.AllowedOrigins)
		httpServer = api.NewHTTPServer(cfg.HTTP.Addr, router.Setup())
		go func() {
			logger.Info("http api listening", zap.String("addr", cfg.HTTP.Addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	watcher, err := config.NewWatcher(loader, cfg, logger.Named("config"))
	if err != nil {
		logger.Warn("config reload disabled", zap.Error(err))
	} else {
		defer watcher.Stop()
		watcher.OnChange(func(next *config.Config) {
			applyConfig(cfg, next, container, logger)
		})
	}

	logger.Info("kanboard daemon started",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("cards", len(container.Store.Cards())))

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errChan:
		logger.Error("server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
	}
	if err := server.Stop(); err != nil {
		logger.Warn("daemon shutdown", zap.Error(err))
	}

	// One last attempt for changes whose write failed
	if container.Store.Dirty() {
		if err := container.Store.Persist(shutdownCtx); err != nil {
			logger.Error("board has unsaved changes", zap.Error(err))
			return err
		}
	}
	return nil
}

// applyConfig applies a reloaded config. Only the column set is live;
// other sections need a restart.
func applyConfig(current, next *config.Config, container *di.Container, logger *zap.Logger) {
	columns, err := next.Board.Resolve()
	if err != nil {
		logger.Warn("ignoring reloaded columns", zap.Error(err))
		return
	}
	container.Store.SetColumns(columns)
	logger.Info("columns reloaded", zap.Int("columns", len(columns)))

	if next.Storage.Backend != current.Storage.Backend || next.Storage.Snapshot != current.Storage.Snapshot {
		logger.Warn("storage settings changed; restart kanboardd to apply them")
	}
}
