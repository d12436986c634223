package dto

import (
	"fmt"
	"strings"

	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/service"
)

// CardDTO represents a card data transfer object
type CardDTO struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Column string `json:"column" yaml:"column"`
}

// ColumnDTO is one board column with its cards in display order
type ColumnDTO struct {
	ID    string    `json:"id" yaml:"id"`
	Title string    `json:"title" yaml:"title"`
	Color string    `json:"color,omitempty" yaml:"color,omitempty"`
	Count int       `json:"count" yaml:"count"`
	Cards []CardDTO `json:"cards" yaml:"cards"`
}

// BoardDTO represents the whole board grouped by column
type BoardDTO struct {
	Columns []ColumnDTO `json:"columns" yaml:"columns"`
	Total   int         `json:"total" yaml:"total"`
	Dirty   bool        `json:"dirty,omitempty" yaml:"dirty,omitempty"`
}

// ColumnSummaryDTO describes a column without its cards
type ColumnSummaryDTO struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Count int    `json:"count" yaml:"count"`
}

// AddCardRequest asks for a new card at the end of a column.
// A blank title is not a validation error; it is discarded by the store.
type AddCardRequest struct {
	Column string `json:"column" yaml:"column" validate:"required,max=64"`
	Title  string `json:"title" yaml:"title" validate:"max=500"`
}

// AddCardResponse reports whether a card was created
type AddCardResponse struct {
	Added bool     `json:"added" yaml:"added"`
	Card  *CardDTO `json:"card,omitempty" yaml:"card,omitempty"`
}

// DropRequest is a drop intent as received from a client
type DropRequest struct {
	SourceColumn      string `json:"source_column" yaml:"source_column" validate:"required"`
	SourceIndex       int    `json:"source_index" yaml:"source_index"`
	DestinationColumn string `json:"destination_column" yaml:"destination_column" validate:"required_unless=IsDelete true"`
	DestinationIndex  int    `json:"destination_index" yaml:"destination_index"`
	IsDelete          bool   `json:"is_delete" yaml:"is_delete"`
}

// DropResponse reports the drop outcome
type DropResponse struct {
	Outcome string `json:"outcome" yaml:"outcome"`
	Changed bool   `json:"changed" yaml:"changed"`
}

// DeleteCardResponse reports whether a card was removed
type DeleteCardResponse struct {
	Removed bool `json:"removed" yaml:"removed"`
}

// Intent converts the request into a domain drop intent
func (r DropRequest) Intent() entity.DropIntent {
	return entity.DropIntent{
		SourceColumn:      r.SourceColumn,
		SourceIndex:       r.SourceIndex,
		DestinationColumn: r.DestinationColumn,
		DestinationIndex:  r.DestinationIndex,
		IsDelete:          r.IsDelete,
	}
}

// CardToDTO converts a card entity to a DTO
func CardToDTO(card entity.Card) CardDTO {
	return CardDTO{
		ID:     card.ID(),
		Title:  card.Title(),
		Column: card.Column(),
	}
}

// CardsToDTO converts cards to DTOs, preserving order
func CardsToDTO(cards []entity.Card) []CardDTO {
	out := make([]CardDTO, len(cards))
	for i, card := range cards {
		out[i] = CardToDTO(card)
	}
	return out
}

// BoardToDTO converts a board projection to a DTO
func BoardToDTO(board *entity.Board, dirty bool) BoardDTO {
	lanes := board.Lanes()
	columns := make([]ColumnDTO, len(lanes))
	for i, lane := range lanes {
		columns[i] = ColumnDTO{
			ID:    lane.Column.ID(),
			Title: lane.Column.Title(),
			Color: lane.Column.Color(),
			Count: len(lane.Cards),
			Cards: CardsToDTO(lane.Cards),
		}
	}
	return BoardDTO{
		Columns: columns,
		Total:   board.Total(),
		Dirty:   dirty,
	}
}

// DropResponseFor builds the response for a drop outcome
func DropResponseFor(outcome service.Outcome) DropResponse {
	return DropResponse{
		Outcome: outcome.String(),
		Changed: outcome.Changed(),
	}
}

// Locate finds a card by ID or unique ID prefix and returns it with its
// column and index in that column's view. An exact match wins over prefix
// matches.
func (b BoardDTO) Locate(id string) (CardDTO, string, int, error) {
	var (
		found     CardDTO
		column    string
		index     = -1
		ambiguous bool
	)
	for _, col := range b.Columns {
		for i, card := range col.Cards {
			if card.ID == id {
				return card, col.ID, i, nil
			}
			if id == "" || !strings.HasPrefix(card.ID, id) {
				continue
			}
			if index >= 0 {
				ambiguous = true
			}
			found, column, index = card, col.ID, i
		}
	}
	if ambiguous {
		return CardDTO{}, "", 0, fmt.Errorf("%w: %q", entity.ErrAmbiguousCardID, id)
	}
	if index < 0 {
		return CardDTO{}, "", 0, fmt.Errorf("%w: %s", entity.ErrCardNotFound, id)
	}
	return found, column, index, nil
}

// Column returns the column with the given ID
func (b BoardDTO) Column(id string) (ColumnDTO, bool) {
	for _, col := range b.Columns {
		if col.ID == id {
			return col, true
		}
	}
	return ColumnDTO{}, false
}

// Cards flattens the board into one list in display order
func (b BoardDTO) Cards() []CardDTO {
	cards := make([]CardDTO, 0, b.Total)
	for _, col := range b.Columns {
		cards = append(cards, col.Cards...)
	}
	return cards
}

// Rows lists one card per row as ID, column and title
func (b BoardDTO) Rows() [][]string {
	rows := make([][]string, 0, b.Total)
	for _, col := range b.Columns {
		for _, card := range col.Cards {
			rows = append(rows, []string{card.ID, col.ID, card.Title})
		}
	}
	return rows
}
