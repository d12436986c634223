package entity

// Lane is one column together with its filtered view of the collection
type Lane struct {
	Column Column
	Cards  []Card
}

// Board is a read-only projection of the card collection grouped into lanes.
// Configured columns come first in their configured order; cards referencing
// an unknown column get a trailing lane so they are never hidden.
type Board struct {
	lanes []Lane
	index map[string]int
}

// NewBoard groups cards into lanes, preserving collection order within each lane
func NewBoard(columns []Column, cards []Card) *Board {
	b := &Board{
		lanes: make([]Lane, 0, len(columns)),
		index: make(map[string]int, len(columns)),
	}

	for _, col := range columns {
		if _, exists := b.index[col.ID()]; exists {
			continue
		}
		b.index[col.ID()] = len(b.lanes)
		b.lanes = append(b.lanes, Lane{Column: col, Cards: make([]Card, 0)})
	}

	for _, card := range cards {
		i, ok := b.index[card.Column()]
		if !ok {
			i = len(b.lanes)
			b.index[card.Column()] = i
			b.lanes = append(b.lanes, Lane{
				Column: Column{id: card.Column(), title: card.Column()},
				Cards:  make([]Card, 0),
			})
		}
		b.lanes[i].Cards = append(b.lanes[i].Cards, card)
	}

	return b
}

// Lanes returns the board lanes in display order
func (b *Board) Lanes() []Lane {
	lanes := make([]Lane, len(b.lanes))
	copy(lanes, b.lanes)
	return lanes
}

// Lane returns the lane for a column ID
func (b *Board) Lane(columnID string) (Lane, bool) {
	i, ok := b.index[columnID]
	if !ok {
		return Lane{}, false
	}
	return b.lanes[i], true
}

// Count returns the number of cards in a column
func (b *Board) Count(columnID string) int {
	lane, ok := b.Lane(columnID)
	if !ok {
		return 0
	}
	return len(lane.Cards)
}

// CardAt returns the card at a position of a column's filtered view
func (b *Board) CardAt(columnID string, index int) (Card, bool) {
	lane, ok := b.Lane(columnID)
	if !ok || index < 0 || index >= len(lane.Cards) {
		return Card{}, false
	}
	return lane.Cards[index], true
}

// Locate returns the column and filtered-view index of a card
func (b *Board) Locate(cardID string) (string, int, bool) {
	for _, lane := range b.lanes {
		for i, card := range lane.Cards {
			if card.ID() == cardID {
				return lane.Column.ID(), i, true
			}
		}
	}
	return "", 0, false
}

// Total returns the number of cards on the board
func (b *Board) Total() int {
	total := 0
	for _, lane := range b.lanes {
		total += len(lane.Cards)
	}
	return total
}
