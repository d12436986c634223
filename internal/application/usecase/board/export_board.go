package board

import (
	"context"
	"time"

	"kanboard/internal/application/store"
	"kanboard/internal/infrastructure/serialization"
)

// ExportBoardUseCase renders the board as Markdown
type ExportBoardUseCase struct {
	store *store.BoardStore
	now   func() time.Time
}

// NewExportBoardUseCase creates a new ExportBoardUseCase
func NewExportBoardUseCase(s *store.BoardStore) *ExportBoardUseCase {
	return &ExportBoardUseCase{
		store: s,
		now:   time.Now,
	}
}

// Execute renders the board under the given name
func (uc *ExportBoardUseCase) Execute(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return serialization.RenderBoardMarkdown(uc.store.Board(), name, uc.now())
}
