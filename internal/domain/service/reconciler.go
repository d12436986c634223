package service

import (
	"kanboard/internal/domain/entity"
)

// Outcome classifies the effect of reconciling a drop intent
type Outcome int

const (
	// OutcomeMiss means the source index referenced no card; nothing changed
	OutcomeMiss Outcome = iota
	// OutcomeUnchanged means the card was dropped back where it started
	OutcomeUnchanged
	// OutcomeReordered means a card changed position within its column
	OutcomeReordered
	// OutcomeMoved means a card moved to another column
	OutcomeMoved
	// OutcomeDeleted means a card was removed
	OutcomeDeleted
)

// String returns the outcome label used in logs and metrics
func (o Outcome) String() string {
	switch o {
	case OutcomeMiss:
		return "miss"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeReordered:
		return "reordered"
	case OutcomeMoved:
		return "moved"
	case OutcomeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Changed reports whether the collection differs from the input
func (o Outcome) Changed() bool {
	return o == OutcomeReordered || o == OutcomeMoved || o == OutcomeDeleted
}

// Reconcile computes the card collection that results from applying a drop
// intent. It never mutates cards and always returns a fresh slice.
func Reconcile(cards []entity.Card, intent entity.DropIntent) []entity.Card {
	next, _ := ReconcileWithOutcome(cards, intent)
	return next
}

// ReconcileWithOutcome is Reconcile that also reports what happened.
//
// Only the slots of the destination column are rewritten. For a cross-column
// move the moved card's old slot joins the destination column's slots, so
// the collection keeps its length and every other column keeps both its
// slots and its order.
func ReconcileWithOutcome(cards []entity.Card, intent entity.DropIntent) ([]entity.Card, Outcome) {
	lanes := indexLanes(cards)

	source := lanes.slots(intent.SourceColumn)
	if intent.SourceIndex < 0 || intent.SourceIndex >= len(source) {
		return cloneCards(cards), OutcomeMiss
	}
	targetSlot := source[intent.SourceIndex]
	target := cards[targetSlot]

	if intent.Deletes() {
		next := make([]entity.Card, 0, len(cards)-1)
		next = append(next, cards[:targetSlot]...)
		next = append(next, cards[targetSlot+1:]...)
		return next, OutcomeDeleted
	}

	if intent.DestinationColumn == "" {
		return cloneCards(cards), OutcomeMiss
	}

	var slots []int
	if intent.SameColumn() {
		slots = source
	} else {
		slots = lanes.withSlot(intent.DestinationColumn, targetSlot)
	}

	view := make([]entity.Card, 0, len(slots))
	for _, slot := range slots {
		if slot != targetSlot {
			view = append(view, cards[slot])
		}
	}

	at := clamp(intent.DestinationIndex, len(view))
	view = append(view, entity.Card{})
	copy(view[at+1:], view[at:])
	view[at] = target.MoveTo(intent.DestinationColumn)

	next := cloneCards(cards)
	refill(next, slots, view)

	switch {
	case !intent.SameColumn():
		return next, OutcomeMoved
	case at == intent.SourceIndex:
		return next, OutcomeUnchanged
	default:
		return next, OutcomeReordered
	}
}

// RemoveByID returns cards without the card with the given ID. The boolean
// reports whether a card was removed.
func RemoveByID(cards []entity.Card, id string) ([]entity.Card, bool) {
	for i, card := range cards {
		if card.ID() != id {
			continue
		}
		next := make([]entity.Card, 0, len(cards)-1)
		next = append(next, cards[:i]...)
		next = append(next, cards[i+1:]...)
		return next, true
	}
	return cloneCards(cards), false
}

// FilterColumn returns the filtered view of one column in collection order
func FilterColumn(cards []entity.Card, column string) []entity.Card {
	view := make([]entity.Card, 0)
	for _, card := range cards {
		if card.InColumn(column) {
			view = append(view, card)
		}
	}
	return view
}

func cloneCards(cards []entity.Card) []entity.Card {
	next := make([]entity.Card, len(cards))
	copy(next, cards)
	return next
}
