package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardRows [][]string

func (c cardRows) Rows() [][]string { return c }

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"tsv", FormatTSV, false},
		{"xml", FormatText, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatter_JSONAndYAML(t *testing.T) {
	payload := map[string]int{"total": 3}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON, &buf).Print(payload))
	assert.JSONEq(t, `{"total":3}`, buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(FormatYAML, &buf).Print(payload))
	assert.Equal(t, "total: 3\n", buf.String())
}

func TestFormatter_TSV(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTSV, &buf)

	err := f.Print(cardRows{{"a1", "todo", "write\tdocs"}, {"b2", "done", "ship"}})
	require.NoError(t, err)
	assert.Equal(t, "a1\ttodo\twrite docs\nb2\tdone\tship\n", buf.String())

	assert.Error(t, f.Print("plain string"))
	assert.True(t, f.Structured())
}

func TestFormatter_Listing(t *testing.T) {
	type item struct {
		ID    string `json:"id" yaml:"id"`
		Title string `json:"title" yaml:"title"`
	}
	listing := Listing{
		Header:  []string{"ID", "Title"},
		Records: [][]string{{"a1b2c3d4e5", "write docs"}, {"ff00", "ship"}},
		Display: func(record []string) []string {
			return []string{Truncate(record[0], 4), record[1]}
		},
	}

	t.Run("text renders a table with display rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatText, &buf).Print(listing))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], "ID")
		assert.Contains(t, lines[2], "a1b…")
		assert.NotContains(t, buf.String(), "a1b2c3d4e5")
	})

	t.Run("tsv prints full records", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTSV, &buf).Print(listing))
		assert.Equal(t, "a1b2c3d4e5\twrite docs\nff00\tship\n", buf.String())
	})

	t.Run("json without items keys records by header", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatJSON, &buf).Print(listing))
		assert.JSONEq(t, `[{"id":"a1b2c3d4e5","title":"write docs"},{"id":"ff00","title":"ship"}]`, buf.String())
	})

	t.Run("yaml prefers items", func(t *testing.T) {
		withItems := listing
		withItems.Items = []item{{ID: "ff00", Title: "ship"}}

		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatYAML, &buf).Print(withItems))
		assert.Equal(t, "- id: ff00\n  title: ship\n", buf.String())
	})
}

func TestPrinter_QuietAndTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.SetQuiet(true)

	p.Info("hidden")
	p.Success("hidden too")
	assert.Empty(t, buf.String())

	p.Table([]string{"ID", "Title"}, [][]string{{"a", "first"}, {"bb", "second"}})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "a   first")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
}
