// Package cart implements the Cart Store: an ordered list of line items
// mirrored in a persistent snapshot slot.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	carterrors "github.com/abgdnv/gocart/internal/errors"
	"github.com/abgdnv/gocart/internal/store"
	"github.com/shopspring/decimal"
)

// Store holds the line items of one session and writes them back to the
// snapshot slot after every mutation.
type Store struct {
	mu       sync.Mutex
	items    []LineItem
	key      string
	slot     store.SnapshotStore
	notifier Notifier
	logger   *slog.Logger
	strict   bool
}

type Option func(*Store)

// WithNotifier sets the receiver of cart notifications.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStrictRestore makes Restore return ErrMalformedSnapshot instead of
// starting with an empty cart.
func WithStrictRestore(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// NewStore creates an empty cart bound to the slot under key.
func NewStore(slot store.SnapshotStore, key string, opts ...Option) *Store {
	s := &Store{
		items:    []LineItem{},
		key:      key,
		slot:     slot,
		notifier: nopNotifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "cart", "key", key)
	return s
}

// Restore replaces the in-memory items with the persisted snapshot.
// A missing snapshot leaves the cart empty.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.slot.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, carterrors.ErrSnapshotNotFound) {
			s.items = []LineItem{}
			return nil
		}
		return fmt.Errorf("restore cart: %w", err)
	}

	items, err := DecodeSnapshot(data)
	if err != nil {
		if s.strict {
			return err
		}
		s.logger.WarnContext(ctx, "discarding malformed cart snapshot", "error", err)
		s.items = []LineItem{}
		return nil
	}
	s.items = items
	return nil
}

// AddItem increments the quantity of an existing product or appends a new
// line item with quantity 1. The stored unit price of an existing item is kept.
func (s *Store) AddItem(ctx context.Context, product string, unitPrice decimal.Decimal) error {
	if product == "" {
		return carterrors.ErrInvalidProduct
	}
	if unitPrice.IsNegative() {
		return carterrors.ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneItems(s.items)
	if i := indexOf(next, product); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, LineItem{Product: product, UnitPrice: unitPrice, Quantity: 1})
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.notifier.Notify(ctx, ItemAddedNotification(product))
	return nil
}

// IncreaseQuantity adds one to the item at index. It reports false when the
// index is out of range.
func (s *Store) IncreaseQuantity(ctx context.Context, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.increaseAt(ctx, index)
}

// DecreaseQuantity removes one from the item at index, dropping the item when
// its quantity reaches zero. It reports false when the index is out of range.
func (s *Store) DecreaseQuantity(ctx context.Context, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decreaseAt(ctx, index)
}

// RemoveItem drops the item at index regardless of its quantity.
// It reports false when the index is out of range.
func (s *Store) RemoveItem(ctx context.Context, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeAt(ctx, index)
}

// IncreaseProduct is IncreaseQuantity addressed by product name.
func (s *Store) IncreaseProduct(ctx context.Context, product string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.increaseAt(ctx, indexOf(s.items, product))
}

// DecreaseProduct is DecreaseQuantity addressed by product name.
func (s *Store) DecreaseProduct(ctx context.Context, product string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decreaseAt(ctx, indexOf(s.items, product))
}

// RemoveProduct is RemoveItem addressed by product name.
func (s *Store) RemoveProduct(ctx context.Context, product string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeAt(ctx, indexOf(s.items, product))
}

// Clear empties the cart and deletes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.items = []LineItem{}
	return nil
}

// TotalPrice returns the sum of unit price times quantity over all items.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// TotalItemCount returns the sum of quantities over all items.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Key returns the snapshot slot key.
func (s *Store) Key() string {
	return s.key
}

func (s *Store) inRange(index int) bool {
	if index < 0 || index >= len(s.items) {
		s.logger.Debug("cart index out of range", "index", index, "len", len(s.items))
		return false
	}
	return true
}

func (s *Store) increaseAt(ctx context.Context, index int) (bool, error) {
	if !s.inRange(index) {
		return false, nil
	}
	next := cloneItems(s.items)
	next[index].Quantity++
	return true, s.commit(ctx, next)
}

func (s *Store) decreaseAt(ctx context.Context, index int) (bool, error) {
	if !s.inRange(index) {
		return false, nil
	}
	next := cloneItems(s.items)
	if next[index].Quantity > 1 {
		next[index].Quantity--
	} else {
		next = append(next[:index], next[index+1:]...)
	}
	return true, s.commit(ctx, next)
}

func (s *Store) removeAt(ctx context.Context, index int) (bool, error) {
	if !s.inRange(index) {
		return false, nil
	}
	product := s.items[index].Product
	next := cloneItems(s.items)
	next = append(next[:index], next[index+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return true, err
	}
	s.notifier.Notify(ctx, ItemRemovedNotification(product))
	return true, nil
}

// commit persists next and only then makes it the current state.
func (s *Store) commit(ctx context.Context, next []LineItem) error {
	data, err := EncodeSnapshot(next)
	if err != nil {
		return err
	}
	if err := s.slot.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.items = next
	return nil
}
