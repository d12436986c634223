package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"In progress", "in-progress"},
		{"  TODO!! ", "todo"},
		{"a -- b", "a-b"},
		{"???", "untitled"},
		{"", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}

func TestGenerate_Truncates(t *testing.T) {
	got := Generate(strings.Repeat("ab ", 40))
	assert.LessOrEqual(t, len(got), 50)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"done": true, "done-2": true}
	assert.Equal(t, "done-3", Unique("Done", taken))
	assert.Equal(t, "todo", Unique("Todo", taken))
}
