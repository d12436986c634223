package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kanboard/internal/di"
	"kanboard/internal/infrastructure/config"
)

func TestApplyConfig_ReloadsColumns(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.Storage.Backend = config.BackendMemory

	container, cleanup, err := di.InitializeContainer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	next := config.Default(t.TempDir())
	next.Storage.Backend = config.BackendMemory
	next.Board.Columns = []config.ColumnConfig{{Title: "Ideas"}, {ID: "ship", Title: "Shipping"}}

	applyConfig(cfg, next, container, zap.NewNop())

	columns := container.Store.Columns()
	require.Len(t, columns, 2)
	assert.Equal(t, "ideas", columns[0].ID())
	assert.Equal(t, "ship", columns[1].ID())
}

func TestApplyConfig_InvalidColumnsIgnored(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.Storage.Backend = config.BackendMemory

	container, cleanup, err := di.InitializeContainer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	before := container.Store.Columns()

	next := config.Default(t.TempDir())
	next.Board.Columns = []config.ColumnConfig{{ID: "a", Title: "A"}, {ID: "a", Title: "Again"}}
	applyConfig(cfg, next, container, zap.NewNop())

	assert.Equal(t, before, container.Store.Columns())
}
