//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"kanboard/internal/application/usecase"
	"kanboard/internal/application/usecase/board"
	"kanboard/internal/application/usecase/card"
	"kanboard/internal/infrastructure/config"
)

// InitializeContainer sets up all dependencies
func InitializeContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, func(), error) {
	wire.Build(
		// Infrastructure
		ProvideMetrics,
		ProvideColumns,
		ProvideSnapshotRepository,

		// Store
		ProvideBoardStore,

		// Use Cases - Board
		board.NewGetBoardUseCase,
		board.NewExportBoardUseCase,

		// Use Cases - Card
		card.NewAddCardUseCase,
		card.NewApplyDropUseCase,
		card.NewDeleteCardUseCase,

		usecase.NewService,

		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
