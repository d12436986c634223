package decorator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/repository"
)

// LoggingRepository logs every snapshot read and write with its duration
type LoggingRepository struct {
	inner         repository.SnapshotRepository
	logger        *zap.Logger
	slowThreshold time.Duration
}

// NewLoggingRepository wraps inner with operation logging
func NewLoggingRepository(inner repository.SnapshotRepository, logger *zap.Logger, slowThreshold time.Duration) *LoggingRepository {
	return &LoggingRepository{
		inner:         inner,
		logger:        logger.Named("snapshot"),
		slowThreshold: slowThreshold,
	}
}

func (r *LoggingRepository) Load(ctx context.Context) ([]entity.Card, error) {
	start := time.Now()
	cards, err := r.inner.Load(ctx)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, entity.ErrSnapshotNotFound):
		r.logger.Info("no snapshot stored yet", zap.Duration("duration", elapsed))
	case err != nil:
		r.logger.Error("snapshot load failed", zap.Error(err), zap.Duration("duration", elapsed))
	default:
		r.log(elapsed, "snapshot loaded", zap.Int("cards", len(cards)))
	}
	return cards, err
}

func (r *LoggingRepository) Save(ctx context.Context, cards []entity.Card) error {
	start := time.Now()
	err := r.inner.Save(ctx, cards)
	elapsed := time.Since(start)

	if err != nil {
		r.logger.Error("snapshot save failed",
			zap.Error(err),
			zap.Int("cards", len(cards)),
			zap.Duration("duration", elapsed))
		return err
	}
	r.log(elapsed, "snapshot saved", zap.Int("cards", len(cards)))
	return nil
}

func (r *LoggingRepository) log(elapsed time.Duration, msg string, fields ...zap.Field) {
	fields = append(fields, zap.Duration("duration", elapsed))
	if r.slowThreshold > 0 && elapsed > r.slowThreshold {
		r.logger.Warn(msg+" slowly", fields...)
		return
	}
	r.logger.Debug(msg, fields...)
}
