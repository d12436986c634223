package di

import (
	"go.uber.org/zap"

	"kanboard/internal/application/store"
	"kanboard/internal/application/usecase"
	"kanboard/internal/application/usecase/board"
	"kanboard/internal/application/usecase/card"
	"kanboard/internal/domain/repository"
	"kanboard/internal/infrastructure/config"
	"kanboard/internal/infrastructure/metrics"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Collector

	SnapshotRepo repository.SnapshotRepository
	Store        *store.BoardStore

	// Use Cases - Board
	GetBoardUseCase    *board.GetBoardUseCase
	ExportBoardUseCase *board.ExportBoardUseCase

	// Use Cases - Card
	AddCardUseCase    *card.AddCardUseCase
	ApplyDropUseCase  *card.ApplyDropUseCase
	DeleteCardUseCase *card.DeleteCardUseCase

	Service *usecase.Service
}
