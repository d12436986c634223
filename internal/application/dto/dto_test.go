package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/service"
)

func TestValidate_DropRequest(t *testing.T) {
	assert.NoError(t, Validate(DropRequest{SourceColumn: "todo", DestinationColumn: "done"}))
	assert.NoError(t, Validate(DropRequest{SourceColumn: "todo", IsDelete: true}))

	err := Validate(DropRequest{SourceColumn: "todo"})
	require.Error(t, err)
	assert.Equal(t, "destinationcolumn is required", err.Error())

	err = Validate(DropRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sourcecolumn is required")
}

func TestValidate_AddCardRequest(t *testing.T) {
	assert.NoError(t, Validate(AddCardRequest{Column: "todo", Title: "   "}), "blank titles are left to the store")
	assert.Error(t, Validate(AddCardRequest{Title: "x"}))
}

func TestBoardToDTO(t *testing.T) {
	card, err := entity.NewCard("1", "x", "todo")
	require.NoError(t, err)

	board := BoardToDTO(entity.NewBoard(entity.DefaultColumns(), []entity.Card{card}), true)

	require.Len(t, board.Columns, 4)
	assert.Equal(t, 1, board.Total)
	assert.True(t, board.Dirty)
	assert.Equal(t, "TODO", board.Columns[1].Title)
	assert.Equal(t, []CardDTO{{ID: "1", Title: "x", Column: "todo"}}, board.Columns[1].Cards)
	assert.NotNil(t, board.Columns[0].Cards, "empty columns encode as []")
}

func TestDropResponseFor(t *testing.T) {
	assert.Equal(t, DropResponse{Outcome: "moved", Changed: true}, DropResponseFor(service.OutcomeMoved))
	assert.Equal(t, DropResponse{Outcome: "miss"}, DropResponseFor(service.OutcomeMiss))
}

func TestBoardDTO_Locate(t *testing.T) {
	board := BoardDTO{
		Columns: []ColumnDTO{
			{ID: "todo", Cards: []CardDTO{{ID: "a1b2", Title: "one", Column: "todo"}, {ID: "a1c3", Title: "two", Column: "todo"}}},
			{ID: "done", Cards: []CardDTO{{ID: "ffee", Title: "three", Column: "done"}}},
		},
		Total: 3,
	}

	card, column, index, err := board.Locate("ff")
	require.NoError(t, err)
	assert.Equal(t, "three", card.Title)
	assert.Equal(t, "done", column)
	assert.Equal(t, 0, index)

	_, column, index, err = board.Locate("a1c3")
	require.NoError(t, err)
	assert.Equal(t, "todo", column)
	assert.Equal(t, 1, index)

	_, _, _, err = board.Locate("a1")
	assert.ErrorIs(t, err, entity.ErrAmbiguousCardID)

	board.Columns[1].Cards = append(board.Columns[1].Cards, CardDTO{ID: "a1", Title: "four", Column: "done"})
	card, column, index, err = board.Locate("a1")
	require.NoError(t, err, "exact ID wins over earlier prefix matches")
	assert.Equal(t, "four", card.Title)
	assert.Equal(t, "done", column)
	assert.Equal(t, 1, index)
	board.Columns[1].Cards = board.Columns[1].Cards[:1]

	_, _, _, err = board.Locate("zz")
	assert.ErrorIs(t, err, entity.ErrCardNotFound)

	assert.Equal(t, []string{"a1b2", "a1c3", "ffee"}, func() []string {
		var out []string
		for _, c := range board.Cards() {
			out = append(out, c.ID)
		}
		return out
	}())

	assert.Equal(t, [][]string{{"a1b2", "todo", "one"}, {"a1c3", "todo", "two"}, {"ffee", "done", "three"}}, board.Rows())

	_, ok := board.Column("done")
	assert.True(t, ok)
}
