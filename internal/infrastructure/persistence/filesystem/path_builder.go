package filesystem

import (
	"path/filepath"

	"kanboard/pkg/slug"
)

const (
	boardsDirName      = "boards"
	snapshotFileSuffix = ".json"
	exportFileSuffix   = ".md"
)

// PathBuilder constructs filesystem paths for board snapshots
type PathBuilder struct {
	dataPath string
}

// NewPathBuilder creates a new PathBuilder rooted at the data directory
func NewPathBuilder(dataPath string) *PathBuilder {
	return &PathBuilder{
		dataPath: dataPath,
	}
}

// BoardsRoot returns the directory holding all board snapshots
func (pb *PathBuilder) BoardsRoot() string {
	return filepath.Join(pb.dataPath, boardsDirName)
}

// SnapshotFile returns the snapshot path for a named board. The name is
// slugged so it is always a single safe path element.
func (pb *PathBuilder) SnapshotFile(boardName string) string {
	return filepath.Join(pb.BoardsRoot(), slug.Generate(boardName)+snapshotFileSuffix)
}

// ExportFile returns the default Markdown export path for a named board
func (pb *PathBuilder) ExportFile(boardName string) string {
	return filepath.Join(pb.BoardsRoot(), slug.Generate(boardName)+exportFileSuffix)
}
