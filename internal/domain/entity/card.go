package entity

import "strings"

// Card represents a single work item on the board. Cards are values:
// every mutation returns a modified copy.
type Card struct {
	id     string
	title  string
	column string
}

// NewCard creates a new Card. The title is stored trimmed and must not be
// empty after trimming.
func NewCard(id, title, column string) (Card, error) {
	if id == "" {
		return Card{}, ErrEmptyCardID
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Card{}, ErrEmptyCardTitle
	}
	if column == "" {
		return Card{}, ErrEmptyColumnID
	}

	return Card{
		id:     id,
		title:  title,
		column: column,
	}, nil
}

// ID returns the card ID
func (c Card) ID() string {
	return c.id
}

// Title returns the card title
func (c Card) Title() string {
	return c.title
}

// Column returns the ID of the column the card belongs to
func (c Card) Column() string {
	return c.column
}

// InColumn reports whether the card belongs to the given column
func (c Card) InColumn(column string) bool {
	return c.column == column
}

// MoveTo returns a copy of the card reassigned to another column
func (c Card) MoveTo(column string) Card {
	c.column = column
	return c
}

// IsZero reports whether the card is the zero value
func (c Card) IsZero() bool {
	return c.id == ""
}
