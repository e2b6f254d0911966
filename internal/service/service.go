// Package service provides the per-session cart operations behind the REST API.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/gocart/internal/cart"
	carterrors "github.com/abgdnv/gocart/internal/errors"
	"github.com/abgdnv/gocart/internal/events"
	"github.com/abgdnv/gocart/internal/store"
	"github.com/abgdnv/gocart/pkg/config"
	"github.com/abgdnv/gocart/pkg/messaging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// CartService defines the cart operations of one session.
// Index and product misses are no-ops reported through CartDto.Changed.
type CartService interface {
	// Get returns the current cart of the session.
	Get(ctx context.Context, sessionID uuid.UUID) (*CartDto, error)

	// AddItem adds one unit of a product.
	// Returns ErrInvalidProduct or ErrInvalidPrice for bad input.
	AddItem(ctx context.Context, sessionID uuid.UUID, item AddItemDto) (*CartDto, error)

	IncreaseQuantity(ctx context.Context, sessionID uuid.UUID, index int) (*CartDto, error)
	DecreaseQuantity(ctx context.Context, sessionID uuid.UUID, index int) (*CartDto, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, index int) (*CartDto, error)

	IncreaseProduct(ctx context.Context, sessionID uuid.UUID, product string) (*CartDto, error)
	DecreaseProduct(ctx context.Context, sessionID uuid.UUID, product string) (*CartDto, error)
	RemoveProduct(ctx context.Context, sessionID uuid.UUID, product string) (*CartDto, error)

	// Checkout starts checkout and returns the page to redirect to.
	// Returns ErrEmptyCart if the cart has no items.
	Checkout(ctx context.Context, sessionID uuid.UUID) (*CheckoutDto, error)

	// CompleteCheckout publishes the checked-out cart and clears it.
	// Returns ErrEmptyCart if the cart has no items.
	CompleteCheckout(ctx context.Context, sessionID uuid.UUID) (*CheckoutDto, error)

	// UISettings returns the storefront page behavior settings.
	UISettings() UISettingsDto
}

// Service implements CartService on top of a SnapshotStore.
type Service struct {
	slot             store.SnapshotStore
	publisher        messaging.Publisher
	keyPrefix        string
	cartCfg          config.CartConfig
	ui               config.UIConfig
	logger           *slog.Logger
	locks            *sessionLocks
	itemsCounter     metric.Int64Counter
	checkoutsCounter metric.Int64Counter
}

// NewService creates a new instance of CartService.
func NewService(slot store.SnapshotStore, publisher messaging.Publisher, storageCfg config.StorageConfig,
	cartCfg config.CartConfig, ui config.UIConfig, logger *slog.Logger) *Service {
	meter := otel.Meter("cart-service")
	itemsCounter, err := meter.Int64Counter("cart_items_added", metric.WithDescription("Total number of units added to carts"))
	if err != nil {
		panic(fmt.Sprintf("failed to create cart_items_added counter: %v", err))
	}
	checkoutsCounter, err := meter.Int64Counter("cart_checkouts_completed", metric.WithDescription("Total number of completed checkouts"))
	if err != nil {
		panic(fmt.Sprintf("failed to create cart_checkouts_completed counter: %v", err))
	}
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &Service{
		slot:             slot,
		publisher:        publisher,
		keyPrefix:        storageCfg.KeyPrefix,
		cartCfg:          cartCfg,
		ui:               ui,
		logger:           logger.With("component", "cart_service"),
		locks:            newSessionLocks(),
		itemsCounter:     itemsCounter,
		checkoutsCounter: checkoutsCounter,
	}
}

// cartOp runs against a restored cart; it reports whether the cart changed.
type cartOp func(ctx context.Context, c *cart.Store) (bool, error)

// session holds one restored cart and the notifications raised on it.
type session struct {
	id    uuid.UUID
	cart  *cart.Store
	notes []cart.Notification
}

// withSession locks the session, restores its cart and runs fn.
func (s *Service) withSession(ctx context.Context, sessionID uuid.UUID, fn func(ctx context.Context, sess *session) error) error {
	if sessionID == uuid.Nil {
		return carterrors.ErrInvalidSession
	}
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if s.cartCfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cartCfg.Timeout)
		defer cancel()
	}

	sess := &session{id: sessionID}
	forward := events.NewNotifier(s.publisher, sessionID, s.logger)
	notifier := cart.NotifierFunc(func(ctx context.Context, n cart.Notification) {
		sess.notes = append(sess.notes, n)
		forward.Notify(ctx, n)
	})
	sess.cart = cart.NewStore(s.slot, s.slotKey(sessionID),
		cart.WithNotifier(notifier),
		cart.WithLogger(s.logger),
		cart.WithStrictRestore(s.cartCfg.StrictRestore),
	)
	if err := sess.cart.Restore(ctx); err != nil {
		return err
	}
	return fn(ctx, sess)
}

func (s *Service) apply(ctx context.Context, sessionID uuid.UUID, op cartOp) (*CartDto, error) {
	var dto *CartDto
	err := s.withSession(ctx, sessionID, func(ctx context.Context, sess *session) error {
		changed, err := op(ctx, sess.cart)
		if err != nil {
			return err
		}
		dto = s.toCartDto(sess.id, sess.cart, changed, sess.notes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *Service) slotKey(sessionID uuid.UUID) string {
	return s.keyPrefix + ":" + sessionID.String()
}

func (s *Service) Get(ctx context.Context, sessionID uuid.UUID) (*CartDto, error) {
	return s.apply(ctx, sessionID, func(context.Context, *cart.Store) (bool, error) {
		return false, nil
	})
}

func (s *Service) AddItem(ctx context.Context, sessionID uuid.UUID, item AddItemDto) (*CartDto, error) {
	if item.Price == nil {
		return nil, carterrors.ErrInvalidPrice
	}
	dto, err := s.apply(ctx, sessionID, func(ctx context.Context, c *cart.Store) (bool, error) {
		if err := c.AddItem(ctx, item.Product, *item.Price); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.itemsCounter.Add(ctx, 1)
	return dto, nil
}

func (s *Service) IncreaseQuantity(ctx context.Context, sessionID uuid.UUID, index int) (*CartDto, error) {
	return s.apply(ctx, sessionID, func(ctx context.Context, c *cart.Store) (bool, error) {
		return c.IncreaseQuantity(ctx, index)
	})
}

func (s *Service) DecreaseQuantity(ctx context.Context, sessionID uuid.UUID, index int) (*CartDto, error) {
	return s.apply(ctx, sessionID, func(ctx context.Context, c *cart.Store) (bool, error) {
		return c.DecreaseQuantity(ctx, index)
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID uuid.UUID, index int) (*CartDto, error) {
	return s.apply(ctx, sessionID, func(ctx context.Context, c *cart.Store) (bool, error) {
		return c.RemoveItem(ctx, index)
	})
}

func (s *Service) IncreaseProduct(ctx context.Context, sessionID uuid.UUID, product string) (*CartDto, error) {
	return s.apply(ctx, sessionID, func(ctx context.Context, c *cart.Store) (bool, error) {
		return c.IncreaseProduct(ctx, product)
	})
}

func (s *Service) DecreaseProduct(ctx context.Context, sessionID uuid.UUID, product string) (*CartDto, error) {
	return s.apply(ctx, sessionID, func(ctx context.Context, c *cart.Store) (bool, error) {
		return c.DecreaseProduct(ctx, product)
	})
}

func (s *Service) RemoveProduct(ctx context.Context, sessionID uuid.UUID, product string) (*CartDto, error) {
	return s.apply(ctx, sessionID, func(ctx context.Context, c *cart.Store) (bool, error) {
		return c.RemoveProduct(ctx, product)
	})
}

// Checkout leaves the snapshot in place; the cart is cleared by CompleteCheckout.
func (s *Service) Checkout(ctx context.Context, sessionID uuid.UUID) (*CheckoutDto, error) {
	var dto *CheckoutDto
	err := s.withSession(ctx, sessionID, func(ctx context.Context, sess *session) error {
		if sess.cart.IsEmpty() {
			events.Publish(ctx, s.publisher, s.logger, events.FromNotification(sess.id, cart.CheckoutEmptyNotification(), time.Now().UTC()))
			return carterrors.ErrEmptyCart
		}
		started := cart.CheckoutStartedNotification()
		sess.notes = append(sess.notes, started)
		events.Publish(ctx, s.publisher, s.logger, events.CheckoutStartedEvent{
			SessionID:  sess.id,
			ItemCount:  sess.cart.TotalItemCount(),
			TotalPrice: sess.cart.TotalPrice(),
			Message:    started.Message,
			OccurredAt: time.Now().UTC(),
		})
		dto = &CheckoutDto{
			Cart:       s.toCartDto(sess.id, sess.cart, false, sess.notes),
			RedirectTo: s.ui.CheckoutPage,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *Service) CompleteCheckout(ctx context.Context, sessionID uuid.UUID) (*CheckoutDto, error) {
	var dto *CheckoutDto
	err := s.withSession(ctx, sessionID, func(ctx context.Context, sess *session) error {
		if sess.cart.IsEmpty() {
			return carterrors.ErrEmptyCart
		}
		items := sess.cart.Items()
		event := events.CheckedOutEvent{
			SessionID:   sess.id,
			Items:       make([]events.CheckedOutItem, 0, len(items)),
			TotalPrice:  sess.cart.TotalPrice(),
			ItemCount:   sess.cart.TotalItemCount(),
			CompletedAt: time.Now().UTC(),
		}
		for _, it := range items {
			event.Items = append(event.Items, events.CheckedOutItem{Product: it.Product, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
		}

		if err := sess.cart.Clear(ctx); err != nil {
			return err
		}
		events.Publish(ctx, s.publisher, s.logger, event)
		s.checkoutsCounter.Add(ctx, 1)
		s.logger.InfoContext(ctx, "checkout completed", "session_id", sess.id, "items", event.ItemCount, "total", event.TotalPrice.String())

		dto = &CheckoutDto{
			Cart:      s.toCartDto(sess.id, sess.cart, true, sess.notes),
			Completed: true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *Service) UISettings() UISettingsDto {
	return UISettingsDto{
		Display:               s.ui.Display,
		MobileNav:             s.ui.MobileNav,
		MobileBreakpointPx:    s.ui.MobileBreakpoint,
		ScrollThresholdPx:     s.ui.ScrollThreshold,
		NavHideScrollDeltaPx:  s.ui.NavHideScrollDelta,
		NotificationDismissMs: s.ui.NotificationDismiss.Milliseconds(),
		CurrencyPrefix:        s.cartCfg.CurrencyPrefix,
		CheckoutPage:          s.ui.CheckoutPage,
	}
}
