package serialization

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"kanboard/internal/domain/entity"
)

const (
	yamlDelimiter = "---"
)

// boardFrontmatter is the YAML header of an exported board
type boardFrontmatter struct {
	Board    string         `yaml:"board"`
	Exported string         `yaml:"exported"`
	Total    int            `yaml:"total"`
	Columns  map[string]int `yaml:"columns"`
}

// RenderBoardMarkdown renders a board as a Markdown document with a YAML
// frontmatter header holding per-column counts
func RenderBoardMarkdown(board *entity.Board, name string, exportedAt time.Time) ([]byte, error) {
	lanes := board.Lanes()

	header := boardFrontmatter{
		Board:    name,
		Exported: exportedAt.UTC().Format(time.RFC3339),
		Total:    board.Total(),
		Columns:  make(map[string]int, len(lanes)),
	}
	for _, lane := range lanes {
		header.Columns[lane.Column.ID()] = len(lane.Cards)
	}

	yamlData, err := yaml.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(yamlDelimiter + "\n")
	buf.Write(yamlData)
	buf.WriteString(yamlDelimiter + "\n")

	for _, lane := range lanes {
		fmt.Fprintf(&buf, "\n## %s (%d)\n\n", lane.Column.Title(), len(lane.Cards))
		if len(lane.Cards) == 0 {
			buf.WriteString("_empty_\n")
			continue
		}
		for _, card := range lane.Cards {
			fmt.Fprintf(&buf, "- %s\n", card.Title())
		}
	}

	return buf.Bytes(), nil
}
