package usecase

import (
	"context"

	"kanboard/internal/application/dto"
	"kanboard/internal/application/usecase/board"
	"kanboard/internal/application/usecase/card"
)

// BoardService is the set of board operations a front end needs. The
// in-process Service and the daemon client both implement it.
type BoardService interface {
	GetBoard(ctx context.Context) (dto.BoardDTO, error)
	ExportBoard(ctx context.Context, name string) ([]byte, error)
	AddCard(ctx context.Context, req dto.AddCardRequest) (dto.AddCardResponse, error)
	ApplyDrop(ctx context.Context, req dto.DropRequest) (dto.DropResponse, error)
	DeleteCard(ctx context.Context, id string) (dto.DeleteCardResponse, error)
}

// Service runs board operations against the local store
type Service struct {
	getBoard    *board.GetBoardUseCase
	exportBoard *board.ExportBoardUseCase
	addCard     *card.AddCardUseCase
	applyDrop   *card.ApplyDropUseCase
	deleteCard  *card.DeleteCardUseCase
}

var _ BoardService = (*Service)(nil)

// NewService creates a Service from its use cases
func NewService(
	getBoard *board.GetBoardUseCase,
	exportBoard *board.ExportBoardUseCase,
	addCard *card.AddCardUseCase,
	applyDrop *card.ApplyDropUseCase,
	deleteCard *card.DeleteCardUseCase,
) *Service {
	return &Service{
		getBoard:    getBoard,
		exportBoard: exportBoard,
		addCard:     addCard,
		applyDrop:   applyDrop,
		deleteCard:  deleteCard,
	}
}

func (s *Service) GetBoard(ctx context.Context) (dto.BoardDTO, error) {
	return s.getBoard.Execute(ctx)
}

func (s *Service) ExportBoard(ctx context.Context, name string) ([]byte, error) {
	return s.exportBoard.Execute(ctx, name)
}

func (s *Service) AddCard(ctx context.Context, req dto.AddCardRequest) (dto.AddCardResponse, error) {
	return s.addCard.Execute(ctx, req)
}

func (s *Service) ApplyDrop(ctx context.Context, req dto.DropRequest) (dto.DropResponse, error) {
	return s.applyDrop.Execute(ctx, req)
}

func (s *Service) DeleteCard(ctx context.Context, id string) (dto.DeleteCardResponse, error) {
	return s.deleteCard.Execute(ctx, id)
}
