package service

import (
	"sort"

	"kanboard/internal/domain/entity"
)

// laneIndex maps each column ID to the ascending positions ("slots") its
// cards occupy in the global collection. A column's filtered view is the
// cards found at its slots, in slot order.
type laneIndex map[string][]int

// indexLanes builds the slot index in a single pass over the collection
func indexLanes(cards []entity.Card) laneIndex {
	idx := make(laneIndex)
	for pos, card := range cards {
		idx[card.Column()] = append(idx[card.Column()], pos)
	}
	return idx
}

// slots returns the slots of a column; nil when the column has no cards
func (idx laneIndex) slots(column string) []int {
	return idx[column]
}

// withSlot returns a copy of the column's slots with one extra slot merged
// in ascending order
func (idx laneIndex) withSlot(column string, slot int) []int {
	current := idx[column]
	merged := make([]int, 0, len(current)+1)
	merged = append(merged, current...)

	at := sort.SearchInts(merged, slot)
	merged = append(merged, 0)
	copy(merged[at+1:], merged[at:])
	merged[at] = slot

	return merged
}

// refill writes view into the given slots of cards, one element per slot in
// order. The caller guarantees len(view) == len(slots).
func refill(cards []entity.Card, slots []int, view []entity.Card) {
	for i, slot := range slots {
		cards[slot] = view[i]
	}
}

// clamp bounds an insertion index to [0, n]
func clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}
