package serialization

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"kanboard/internal/domain/entity"
	"kanboard/internal/infrastructure/persistence/mapper"
)

// MarshalSnapshot encodes the collection as a flat JSON array of
// {id, title, column} objects
func MarshalSnapshot(cards []entity.Card) ([]byte, error) {
	data, err := json.Marshal(mapper.CardsToStorage(cards))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a snapshot. Data that is not a JSON array of
// card records wraps entity.ErrSnapshotCorrupt. Individual invalid records
// are dropped and counted in skipped.
func UnmarshalSnapshot(data []byte) (cards []entity.Card, skipped int, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, 0, fmt.Errorf("empty snapshot: %w", entity.ErrSnapshotCorrupt)
	}

	var records []mapper.CardStorage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entity.ErrSnapshotCorrupt, err)
	}

	cards, skipped = mapper.CardsFromStorage(records)
	return cards, skipped, nil
}

// DecodeSnapshot is UnmarshalSnapshot for repositories: dropped records are
// reported at Warn with the snapshot location, since the next save erases them.
func DecodeSnapshot(data []byte, location string, logger *zap.Logger) ([]entity.Card, error) {
	cards, skipped, err := UnmarshalSnapshot(data)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		logger.Warn("dropped invalid snapshot records",
			zap.String("location", location),
			zap.Int("skipped", skipped),
			zap.Int("kept", len(cards)))
	}
	return cards, nil
}
