package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Run("trims title", func(t *testing.T) {
		card, err := NewCard("1", "  write docs \n", "todo")
		require.NoError(t, err)
		assert.Equal(t, "write docs", card.Title())
		assert.Equal(t, "todo", card.Column())
		assert.False(t, card.IsZero())
	})

	t.Run("rejects blank title", func(t *testing.T) {
		_, err := NewCard("1", "   \t", "todo")
		assert.ErrorIs(t, err, ErrEmptyCardTitle)
	})

	t.Run("rejects missing id", func(t *testing.T) {
		_, err := NewCard("", "x", "todo")
		assert.ErrorIs(t, err, ErrEmptyCardID)
	})

	t.Run("rejects missing column", func(t *testing.T) {
		_, err := NewCard("1", "x", "")
		assert.ErrorIs(t, err, ErrEmptyColumnID)
	})
}

func TestCard_MoveToReturnsCopy(t *testing.T) {
	card, err := NewCard("1", "x", "todo")
	require.NoError(t, err)

	moved := card.MoveTo("done")
	assert.Equal(t, "todo", card.Column())
	assert.Equal(t, "done", moved.Column())
	assert.Equal(t, card.ID(), moved.ID())
}

func TestDropIntent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		intent  DropIntent
		wantErr error
	}{
		{"valid move", DropIntent{SourceColumn: "todo", DestinationColumn: "done"}, nil},
		{"delete without destination", DropIntent{SourceColumn: "todo", IsDelete: true}, nil},
		{"missing source", DropIntent{DestinationColumn: "done"}, ErrEmptyColumnID},
		{"missing destination", DropIntent{SourceColumn: "todo"}, ErrEmptyColumnID},
		{"negative source", DropIntent{SourceColumn: "todo", SourceIndex: -1, DestinationColumn: "todo"}, ErrNegativeIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.intent.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestDropIntent_TrashDeletes(t *testing.T) {
	intent := DropIntent{SourceColumn: "todo", DestinationColumn: TrashColumn}
	assert.True(t, intent.Deletes())
	assert.Equal(t, "todo[0] -> trash", intent.String())
}

func TestNewColumn(t *testing.T) {
	col, err := NewColumn("review", "", "")
	require.NoError(t, err)
	assert.Equal(t, "review", col.Title())

	_, err = NewColumn(TrashColumn, "Trash", "")
	assert.ErrorIs(t, err, ErrTrashColumn)
}

func TestNewBoard(t *testing.T) {
	mk := func(id, col string) Card {
		c, err := NewCard(id, id, col)
		require.NoError(t, err)
		return c
	}
	cards := []Card{mk("a", "todo"), mk("b", "archive"), mk("c", "todo"), mk("d", "done")}

	board := NewBoard(DefaultColumns(), cards)
	lanes := board.Lanes()

	require.Len(t, lanes, 5)
	assert.Equal(t, "backlog", lanes[0].Column.ID())
	assert.Equal(t, "archive", lanes[4].Column.ID(), "unknown column gets a trailing lane")
	assert.Equal(t, 2, board.Count("todo"))
	assert.Equal(t, 0, board.Count("missing"))
	assert.Equal(t, 4, board.Total())

	card, ok := board.CardAt("todo", 1)
	require.True(t, ok)
	assert.Equal(t, "c", card.ID())

	_, ok = board.CardAt("todo", 2)
	assert.False(t, ok)

	col, idx, ok := board.Locate("d")
	require.True(t, ok)
	assert.Equal(t, "done", col)
	assert.Equal(t, 0, idx)
}
