package memory

import (
	"context"
	"sync"

	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/repository"
)

// SnapshotRepository keeps the snapshot in process memory. It backs the
// "memory" storage backend and store tests.
type SnapshotRepository struct {
	mu     sync.RWMutex
	cards  []entity.Card
	stored bool
	saves  int
}

// NewSnapshotRepository creates an empty in-memory repository
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

// Seed creates a repository that already holds cards
func Seed(cards []entity.Card) *SnapshotRepository {
	r := NewSnapshotRepository()
	r.cards = append([]entity.Card(nil), cards...)
	r.stored = true
	return r
}

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

func (r *SnapshotRepository) Load(ctx context.Context) ([]entity.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.stored {
		return nil, entity.ErrSnapshotNotFound
	}
	return append([]entity.Card(nil), r.cards...), nil
}

func (r *SnapshotRepository) Save(ctx context.Context, cards []entity.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cards = append([]entity.Card(nil), cards...)
	r.stored = true
	r.saves++
	return nil
}

// Saves returns how many times Save succeeded
func (r *SnapshotRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
