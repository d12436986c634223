package card

import (
	"context"

	"kanboard/internal/application/dto"
	"kanboard/internal/application/store"
)

// AddCardUseCase handles creating cards
type AddCardUseCase struct {
	store *store.BoardStore
}

// NewAddCardUseCase creates a new AddCardUseCase
func NewAddCardUseCase(s *store.BoardStore) *AddCardUseCase {
	return &AddCardUseCase{
		store: s,
	}
}

// Execute appends a card to the board. Only malformed requests return an
// error; a blank title yields Added=false.
func (uc *AddCardUseCase) Execute(ctx context.Context, req dto.AddCardRequest) (dto.AddCardResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.AddCardResponse{}, err
	}

	card, ok := uc.store.AddCard(ctx, req.Column, req.Title)
	if !ok {
		return dto.AddCardResponse{Added: false}, nil
	}

	cardDTO := dto.CardToDTO(card)
	return dto.AddCardResponse{Added: true, Card: &cardDTO}, nil
}
