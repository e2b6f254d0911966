package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	carterrors "github.com/abgdnv/gocart/internal/errors"
	"github.com/abgdnv/gocart/pkg/config"
	"github.com/sony/gobreaker/v2"
)

// BreakerStore wraps a SnapshotStore in a circuit breaker.
type BreakerStore struct {
	next    SnapshotStore
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewBreakerStore returns next guarded by a circuit breaker configured from cfg.
// A missing snapshot is not counted as a failure.
func NewBreakerStore(next SnapshotStore, cfg config.CircuitBreakerConfig) *BreakerStore {
	st := gobreaker.Settings{
		Name:        "cart-snapshot-store",
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.TotalSuccesses + counts.TotalFailures
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures ||
				(total > cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(total)*100 > float64(cfg.ErrorRatePercent))
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, carterrors.ErrSnapshotNotFound) ||
				errors.Is(err, context.Canceled)
		},
	}
	if st.Timeout <= 0 {
		st.Timeout = 5 * time.Second
	}
	return &BreakerStore{next: next, breaker: gobreaker.NewCircuitBreaker[[]byte](st)}
}

func (b *BreakerStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := b.breaker.Execute(func() ([]byte, error) {
		return b.next.Load(ctx, key)
	})
	return data, mapBreakerError(err)
}

func (b *BreakerStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := b.breaker.Execute(func() ([]byte, error) {
		return nil, b.next.Save(ctx, key, data)
	})
	return mapBreakerError(err)
}

func (b *BreakerStore) Delete(ctx context.Context, key string) error {
	_, err := b.breaker.Execute(func() ([]byte, error) {
		return nil, b.next.Delete(ctx, key)
	})
	return mapBreakerError(err)
}

// State reports the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.breaker.State()
}

func mapBreakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", carterrors.ErrStorageUnavailable, err)
	}
	return err
}
