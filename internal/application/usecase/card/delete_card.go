package card

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kanboard/internal/application/dto"
	"kanboard/internal/application/store"
	"kanboard/internal/domain/entity"
)

// DeleteCardUseCase removes cards by ID
type DeleteCardUseCase struct {
	store *store.BoardStore
}

// NewDeleteCardUseCase creates a new DeleteCardUseCase
func NewDeleteCardUseCase(s *store.BoardStore) *DeleteCardUseCase {
	return &DeleteCardUseCase{
		store: s,
	}
}

// Execute removes the card with the given ID, or the single card whose ID
// starts with it. Unknown IDs report Removed=false; an ambiguous prefix is
// an error wrapping entity.ErrAmbiguousCardID.
func (uc *DeleteCardUseCase) Execute(ctx context.Context, id string) (dto.DeleteCardResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dto.DeleteCardResponse{}, entity.ErrEmptyCardID
	}

	resolved, err := ResolveID(uc.store.Cards(), id)
	if errors.Is(err, entity.ErrCardNotFound) {
		return dto.DeleteCardResponse{Removed: false}, nil
	}
	if err != nil {
		return dto.DeleteCardResponse{}, err
	}

	return dto.DeleteCardResponse{Removed: uc.store.RemoveByID(ctx, resolved)}, nil
}

// ResolveID finds the full ID for an exact ID or an unambiguous prefix.
// Generated IDs are UUIDs, so CLI users usually type a prefix. An exact
// match wins over any number of prefix matches.
func ResolveID(cards []entity.Card, id string) (string, error) {
	var match string
	ambiguous := false
	for _, card := range cards {
		if card.ID() == id {
			return id, nil
		}
		if !strings.HasPrefix(card.ID(), id) {
			continue
		}
		if match != "" {
			ambiguous = true
		}
		match = card.ID()
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %q", entity.ErrAmbiguousCardID, id)
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", entity.ErrCardNotFound, id)
	}
	return match, nil
}
