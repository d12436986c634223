package mapper

import (
	"fmt"

	"kanboard/internal/domain/entity"
)

// CardStorage represents the stored form of a card. The snapshot is a flat
// array of these records.
type CardStorage struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Column string `json:"column" yaml:"column"`
}

// CardToStorage converts a Card entity to storage format
func CardToStorage(card entity.Card) CardStorage {
	return CardStorage{
		ID:     card.ID(),
		Title:  card.Title(),
		Column: card.Column(),
	}
}

// CardFromStorage converts storage format to a Card entity
func CardFromStorage(record CardStorage) (entity.Card, error) {
	card, err := entity.NewCard(record.ID, record.Title, record.Column)
	if err != nil {
		return entity.Card{}, fmt.Errorf("invalid card %q: %w", record.ID, err)
	}
	return card, nil
}

// CardsToStorage converts a collection, preserving order
func CardsToStorage(cards []entity.Card) []CardStorage {
	records := make([]CardStorage, 0, len(cards))
	for _, card := range cards {
		records = append(records, CardToStorage(card))
	}
	return records
}

// CardsFromStorage converts stored records back to entities, preserving
// order. Records that fail validation and repeated IDs are skipped; the
// number of skipped records is returned.
func CardsFromStorage(records []CardStorage) ([]entity.Card, int) {
	cards := make([]entity.Card, 0, len(records))
	seen := make(map[string]bool, len(records))
	skipped := 0

	for _, record := range records {
		card, err := CardFromStorage(record)
		if err != nil || seen[card.ID()] {
			skipped++
			continue
		}
		seen[card.ID()] = true
		cards = append(cards, card)
	}

	return cards, skipped
}
