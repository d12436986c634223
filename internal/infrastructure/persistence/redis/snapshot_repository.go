package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/repository"
	"kanboard/internal/infrastructure/serialization"
)

const keyPrefix = "kanboard:snapshot:"

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewClient creates a go-redis client and checks it with PING. An unreachable
// server is logged, not returned: go-redis dials lazily, so the client keeps
// working once the server comes back.
func NewClient(ctx context.Context, opts Options) (*goredis.Client, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.Timeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis is unreachable, continuing without it",
			zap.String("addr", opts.Addr),
			zap.Error(err))
	}

	return client, nil
}

// SnapshotRepository stores the snapshot JSON under a single string key
type SnapshotRepository struct {
	client *goredis.Client
	key    string
	logger *zap.Logger
}

// Option configures a SnapshotRepository
type Option func(*SnapshotRepository)

// WithLogger reports records dropped while loading
func WithLogger(logger *zap.Logger) Option {
	return func(r *SnapshotRepository) {
		r.logger = logger
	}
}

// NewSnapshotRepository creates a Redis-backed snapshot repository for a board name
func NewSnapshotRepository(client *goredis.Client, boardName string, opts ...Option) repository.SnapshotRepository {
	r := &SnapshotRepository{
		client: client,
		key:    Key(boardName),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the Redis key that holds a board's snapshot
func Key(boardName string) string {
	return keyPrefix + boardName
}

func (r *SnapshotRepository) Load(ctx context.Context) ([]entity.Card, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, entity.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", r.key, err)
	}

	return serialization.DecodeSnapshot(data, r.key, r.logger)
}

func (r *SnapshotRepository) Save(ctx context.Context, cards []entity.Card) error {
	data, err := serialization.MarshalSnapshot(cards)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot %s: %w", r.key, err)
	}
	return nil
}
