package entity

// Column represents a named lane. Columns own no cards; membership is
// derived from each card's column ID.
type Column struct {
	id    string
	title string
	color string
}

// NewColumn creates a new Column. An empty title defaults to the ID.
func NewColumn(id, title, color string) (Column, error) {
	if id == "" {
		return Column{}, ErrEmptyColumnID
	}
	if id == TrashColumn {
		return Column{}, ErrTrashColumn
	}
	if title == "" {
		title = id
	}

	return Column{
		id:    id,
		title: title,
		color: color,
	}, nil
}

// ID returns the column ID
func (c Column) ID() string {
	return c.id
}

// Title returns the display title
func (c Column) Title() string {
	return c.title
}

// Color returns the configured heading color, empty when unset
func (c Column) Color() string {
	return c.color
}

// DefaultColumns returns the stock board layout
func DefaultColumns() []Column {
	return []Column{
		{id: "backlog", title: "Backlog", color: "#737373"},
		{id: "todo", title: "TODO", color: "#FEF08A"},
		{id: "doing", title: "In progress", color: "#BFDBFE"},
		{id: "done", title: "Complete", color: "#A7F3D0"},
	}
}
