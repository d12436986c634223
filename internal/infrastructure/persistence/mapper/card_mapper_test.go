package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanboard/internal/domain/entity"
)

func TestCardFromStorage(t *testing.T) {
	card, err := CardFromStorage(CardStorage{ID: "1", Title: " ship it ", Column: "doing"})
	require.NoError(t, err)
	assert.Equal(t, "ship it", card.Title())

	_, err = CardFromStorage(CardStorage{ID: "2", Title: "", Column: "doing"})
	assert.ErrorIs(t, err, entity.ErrEmptyCardTitle)
}

func TestCardsFromStorage_SkipsInvalidAndDuplicates(t *testing.T) {
	records := []CardStorage{
		{ID: "1", Title: "a", Column: "todo"},
		{ID: "", Title: "no id", Column: "todo"},
		{ID: "2", Title: "b", Column: "done"},
		{ID: "1", Title: "again", Column: "doing"},
	}

	cards, skipped := CardsFromStorage(records)

	assert.Equal(t, 2, skipped)
	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].Title())
	assert.Equal(t, "2", cards[1].ID())
	assert.Equal(t, []CardStorage{records[0], records[2]}, CardsToStorage(cards))
}
