package entity

import "fmt"

// TrashColumn is the pseudo-column of the delete target. Dropping a card on
// it deletes the card.
const TrashColumn = "trash"

// DropIntent describes a completed drag gesture. Indices are positions within
// the filtered per-column views, not within the global collection.
type DropIntent struct {
	SourceColumn      string `json:"source_column" yaml:"source_column"`
	SourceIndex       int    `json:"source_index" yaml:"source_index"`
	DestinationColumn string `json:"destination_column" yaml:"destination_column"`
	DestinationIndex  int    `json:"destination_index" yaml:"destination_index"`
	IsDelete          bool   `json:"is_delete,omitempty" yaml:"is_delete,omitempty"`
}

// Deletes reports whether the intent removes its card, either through the
// delete flag or by targeting the trash column.
func (i DropIntent) Deletes() bool {
	return i.IsDelete || i.DestinationColumn == TrashColumn
}

// SameColumn reports whether the intent reorders within one column
func (i DropIntent) SameColumn() bool {
	return i.SourceColumn == i.DestinationColumn
}

// Validate checks that the intent is structurally well formed. A stale index
// is not a validation failure; it resolves to a miss during reconciliation.
func (i DropIntent) Validate() error {
	if i.SourceColumn == "" {
		return fmt.Errorf("source: %w", ErrEmptyColumnID)
	}
	if !i.Deletes() && i.DestinationColumn == "" {
		return fmt.Errorf("destination: %w", ErrEmptyColumnID)
	}
	if i.SourceIndex < 0 {
		return fmt.Errorf("source index %d: %w", i.SourceIndex, ErrNegativeIndex)
	}
	return nil
}

func (i DropIntent) String() string {
	if i.Deletes() {
		return fmt.Sprintf("%s[%d] -> trash", i.SourceColumn, i.SourceIndex)
	}
	return fmt.Sprintf("%s[%d] -> %s[%d]", i.SourceColumn, i.SourceIndex, i.DestinationColumn, i.DestinationIndex)
}
