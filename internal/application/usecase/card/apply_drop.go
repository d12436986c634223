package card

import (
	"context"

	"kanboard/internal/application/dto"
	"kanboard/internal/application/store"
)

// ApplyDropUseCase applies drop intents from gesture adapters
type ApplyDropUseCase struct {
	store *store.BoardStore
}

// NewApplyDropUseCase creates a new ApplyDropUseCase
func NewApplyDropUseCase(s *store.BoardStore) *ApplyDropUseCase {
	return &ApplyDropUseCase{
		store: s,
	}
}

// Execute applies one drop intent. A stale or out-of-range source is
// reported as the "miss" outcome, not as an error.
func (uc *ApplyDropUseCase) Execute(ctx context.Context, req dto.DropRequest) (dto.DropResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.DropResponse{}, err
	}

	outcome := uc.store.ApplyDrop(ctx, req.Intent())
	return dto.DropResponseFor(outcome), nil
}
