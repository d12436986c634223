package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kanboard/internal/application/store"
	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/repository"
	"kanboard/internal/infrastructure/config"
	"kanboard/internal/infrastructure/metrics"
	"kanboard/internal/infrastructure/persistence/decorator"
	"kanboard/internal/infrastructure/persistence/filesystem"
	"kanboard/internal/infrastructure/persistence/memory"
	redisrepo "kanboard/internal/infrastructure/persistence/redis"
	s3repo "kanboard/internal/infrastructure/persistence/s3"
)

const slowSnapshotThreshold = time.Second

// ProvideMetrics creates the metrics collector
func ProvideMetrics() *metrics.Collector {
	return metrics.NewCollector()
}

// ProvideColumns resolves the configured board columns
func ProvideColumns(cfg *config.Config) ([]entity.Column, error) {
	return cfg.Board.Resolve()
}

// ProvideSnapshotRepository builds the configured snapshot backend. Remote
// backends sit behind a circuit breaker when enabled; every backend is
// wrapped with operation logging.
func ProvideSnapshotRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SnapshotRepository, func(), error) {
	storage := cfg.Storage
	cleanup := func() {}

	var repo repository.SnapshotRepository
	remote := false

	switch storage.Backend {
	case config.BackendFile:
		path := filesystem.NewPathBuilder(storage.DataPath).SnapshotFile(storage.Snapshot)
		repo = filesystem.NewSnapshotRepository(path, filesystem.WithLogger(logger))

	case config.BackendMemory:
		repo = memory.NewSnapshotRepository()

	case config.BackendS3:
		client, err := s3repo.NewClient(ctx, s3repo.Options{
			Endpoint:     storage.S3.Endpoint,
			Region:       storage.S3.Region,
			Bucket:       storage.S3.Bucket,
			AccessKey:    storage.S3.AccessKey,
			SecretKey:    storage.S3.SecretKey,
			UsePathStyle: storage.S3.UsePathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		repo = s3repo.NewSnapshotRepository(client, storage.S3.Bucket, storage.Snapshot, s3repo.WithLogger(logger))
		remote = true

	case config.BackendRedis:
		client, err := redisrepo.NewClient(ctx, redisrepo.Options{
			Addr:     storage.Redis.Addr,
			Password: storage.Redis.Password,
			DB:       storage.Redis.DB,
			Timeout:  storage.Timeout,
			Logger:   logger,
		})
		if err != nil {
			return nil, nil, err
		}
		repo = redisrepo.NewSnapshotRepository(client, storage.Snapshot, redisrepo.WithLogger(logger))
		cleanup = func() { client.Close() }
		remote = true

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", storage.Backend)
	}

	if remote && storage.Breaker.Enabled {
		bc := decorator.DefaultBreakerConfig("snapshot-" + storage.Backend)
		if storage.Breaker.Timeout > 0 {
			bc.Timeout = storage.Breaker.Timeout
		}
		if storage.Breaker.FailureThreshold > 0 {
			bc.FailureThreshold = storage.Breaker.FailureThreshold
		}
		if storage.Breaker.MinRequests > 0 {
			bc.MinRequests = storage.Breaker.MinRequests
		}
		repo = decorator.NewCircuitBreakerRepository(repo, bc, logger)
	}

	logger.Info("snapshot storage ready",
		zap.String("backend", storage.Backend),
		zap.String("snapshot", storage.Snapshot))

	return decorator.NewLoggingRepository(repo, logger, slowSnapshotThreshold), cleanup, nil
}

// ProvideBoardStore creates the store and loads the stored board
func ProvideBoardStore(
	ctx context.Context,
	cfg *config.Config,
	repo repository.SnapshotRepository,
	columns []entity.Column,
	logger *zap.Logger,
	collector *metrics.Collector,
) *store.BoardStore {
	s := store.NewBoardStore(repo,
		store.WithColumns(columns),
		store.WithLogger(logger),
		store.WithMetrics(collector),
		store.WithWriteTimeout(cfg.Storage.Timeout),
	)
	s.Load(ctx)
	return s
}
