package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/repository"
	"kanboard/internal/infrastructure/serialization"
	"kanboard/pkg/filesystem"
)

// SnapshotRepository stores the card collection as a JSON file
type SnapshotRepository struct {
	path   string
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

// NewSnapshotRepository creates a file-backed snapshot repository
func NewSnapshotRepository(path string, opts ...Option) repository.SnapshotRepository {
	r := &SnapshotRepository{
		path:   path,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the snapshot file path
func (r *SnapshotRepository) Path() string {
	return r.path
}

// Load reads the snapshot file
func (r *SnapshotRepository) Load(ctx context.Context) ([]entity.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, entity.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return serialization.DecodeSnapshot(data, r.path, r.logger)
}

// Save atomically replaces the snapshot file
func (r *SnapshotRepository) Save(ctx context.Context, cards []entity.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := serialization.MarshalSnapshot(cards)
	if err != nil {
		return err
	}

	if err := filesystem.WriteAtomic(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
