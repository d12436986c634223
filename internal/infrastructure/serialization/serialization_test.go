package serialization

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"kanboard/internal/domain/entity"
)

func mustCard(t *testing.T, id, title, column string) entity.Card {
	t.Helper()
	card, err := entity.NewCard(id, title, column)
	require.NoError(t, err)
	return card
}

func TestMarshalSnapshot_FlatArray(t *testing.T) {
	data, err := MarshalSnapshot([]entity.Card{mustCard(t, "1", "a", "todo")})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","title":"a","column":"todo"}]`, string(data))

	data, err = MarshalSnapshot(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestUnmarshalSnapshot(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cards, skipped, err := UnmarshalSnapshot([]byte(`[{"id":"1","title":"a","column":"todo"},{"id":"2","title":"b","column":"done"}]`))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, cards, 2)
		assert.Equal(t, "done", cards[1].Column())
	})

	t.Run("drops invalid records", func(t *testing.T) {
		cards, skipped, err := UnmarshalSnapshot([]byte(`[{"id":"1","title":"  ","column":"todo"},{"id":"2","title":"b","column":"done"}]`))
		require.NoError(t, err)
		assert.Equal(t, 1, skipped)
		assert.Len(t, cards, 1)
	})

	for name, input := range map[string]string{
		"empty":      "",
		"whitespace": "  \n",
		"object":     `{"cards":[]}`,
		"garbage":    "not json",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := UnmarshalSnapshot([]byte(input))
			assert.ErrorIs(t, err, entity.ErrSnapshotCorrupt)
		})
	}
}

func TestRenderBoardMarkdown(t *testing.T) {
	board := entity.NewBoard(entity.DefaultColumns(), []entity.Card{
		mustCard(t, "1", "write tests", "todo"),
		mustCard(t, "2", "ship", "done"),
	})

	data, err := RenderBoardMarkdown(board, "main", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	doc := string(data)
	require.True(t, strings.HasPrefix(doc, "---\n"))
	parts := strings.SplitN(doc, "---\n", 3)
	require.Len(t, parts, 3)

	var header boardFrontmatter
	require.NoError(t, yaml.Unmarshal([]byte(parts[1]), &header))
	assert.Equal(t, "main", header.Board)
	assert.Equal(t, 2, header.Total)
	assert.Equal(t, 1, header.Columns["todo"])
	assert.Equal(t, "2024-01-02T03:04:05Z", header.Exported)

	assert.Contains(t, parts[2], "## TODO (1)\n\n- write tests\n")
	assert.Contains(t, parts[2], "## Backlog (0)\n\n_empty_\n")
}
