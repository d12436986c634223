package board

import (
	"context"

	"kanboard/internal/application/dto"
	"kanboard/internal/application/store"
)

// GetBoardUseCase returns the board grouped by column
type GetBoardUseCase struct {
	store *store.BoardStore
}

// NewGetBoardUseCase creates a new GetBoardUseCase
func NewGetBoardUseCase(s *store.BoardStore) *GetBoardUseCase {
	return &GetBoardUseCase{
		store: s,
	}
}

// Execute returns the current board
func (uc *GetBoardUseCase) Execute(ctx context.Context) (dto.BoardDTO, error) {
	if err := ctx.Err(); err != nil {
		return dto.BoardDTO{}, err
	}
	return dto.BoardToDTO(uc.store.Board(), uc.store.Dirty()), nil
}

// Columns returns the board's columns with their card counts
func (uc *GetBoardUseCase) Columns(ctx context.Context) ([]dto.ColumnSummaryDTO, error) {
	board, err := uc.Execute(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ColumnSummaryDTO, len(board.Columns))
	for i, col := range board.Columns {
		out[i] = dto.ColumnSummaryDTO{
			ID:    col.ID,
			Title: col.Title,
			Color: col.Color,
			Count: col.Count,
		}
	}
	return out, nil
}
