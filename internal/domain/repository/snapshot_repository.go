package repository

import (
	"context"

	"kanboard/internal/domain/entity"
)

// SnapshotRepository persists the whole card collection as a single record
type SnapshotRepository interface {
	// Load reads the stored collection. It returns entity.ErrSnapshotNotFound
	// when nothing has been stored yet and wraps entity.ErrSnapshotCorrupt
	// when the record cannot be decoded.
	Load(ctx context.Context) ([]entity.Card, error)

	// Save replaces the stored collection
	Save(ctx context.Context, cards []entity.Card) error
}
