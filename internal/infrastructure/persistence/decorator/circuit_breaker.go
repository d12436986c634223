package decorator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"kanboard/internal/domain/entity"
	"kanboard/internal/domain/repository"
)

// ErrStorageUnavailable is returned while the breaker is open
var ErrStorageUnavailable = errors.New("snapshot storage temporarily unavailable")

// BreakerConfig holds circuit breaker settings for a remote backend
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the settings used when none are configured
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          15 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

// CircuitBreakerRepository stops calling a failing backend until it recovers.
// A missing or corrupt snapshot is an answer, not a backend failure, so those
// errors do not count against the breaker.
type CircuitBreakerRepository struct {
	inner repository.SnapshotRepository
	cb    *gobreaker.CircuitBreaker
}

// NewCircuitBreakerRepository wraps inner with a gobreaker circuit breaker
func NewCircuitBreakerRepository(inner repository.SnapshotRepository, cfg BreakerConfig, logger *zap.Logger) *CircuitBreakerRepository {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("snapshot storage breaker changed state",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, entity.ErrSnapshotNotFound) ||
				errors.Is(err, entity.ErrSnapshotCorrupt) ||
				errors.Is(err, context.Canceled)
		},
	}

	return &CircuitBreakerRepository{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(settings),
	}
}

// State exposes the breaker state for health reporting
func (r *CircuitBreakerRepository) State() gobreaker.State {
	return r.cb.State()
}

func (r *CircuitBreakerRepository) Load(ctx context.Context) ([]entity.Card, error) {
	result, err := r.cb.Execute(func() (interface{}, error) {
		return r.inner.Load(ctx)
	})
	if err != nil {
		return nil, translateBreakerError(err)
	}
	cards, _ := result.([]entity.Card)
	return cards, nil
}

func (r *CircuitBreakerRepository) Save(ctx context.Context, cards []entity.Card) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.inner.Save(ctx, cards)
	})
	return translateBreakerError(err)
}

func translateBreakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}
