package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/abgdnv/gocart/internal/cart"
	"github.com/abgdnv/gocart/pkg/messaging"
	"github.com/google/uuid"
)

// FromNotification maps a cart notification to the event published for it.
// It returns nil for notifications that have no event of their own.
func FromNotification(sessionID uuid.UUID, n cart.Notification, at time.Time) messaging.Event {
	switch n.Kind {
	case cart.ItemAdded:
		return ItemAddedEvent{SessionID: sessionID, Product: n.Product, Message: n.Message, OccurredAt: at}
	case cart.ItemRemoved:
		return ItemRemovedEvent{SessionID: sessionID, Product: n.Product, Message: n.Message, OccurredAt: at}
	case cart.CheckoutEmpty:
		return CheckoutRejectedEvent{SessionID: sessionID, Message: n.Message, OccurredAt: at}
	default:
		return nil
	}
}

// Publish sends event and logs a failure instead of returning it.
// Cart operations never fail because the broker is down.
func Publish(ctx context.Context, publisher messaging.Publisher, logger *slog.Logger, event messaging.Event) {
	if event == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "failed to publish cart event", "subject", event.Subject(), "error", err)
	}
}

// Notifier forwards cart notifications of one session to the publisher.
type Notifier struct {
	publisher messaging.Publisher
	sessionID uuid.UUID
	logger    *slog.Logger
}

var _ cart.Notifier = (*Notifier)(nil)

func NewNotifier(publisher messaging.Publisher, sessionID uuid.UUID, logger *slog.Logger) *Notifier {
	return &Notifier{publisher: publisher, sessionID: sessionID, logger: logger}
}

func (n *Notifier) Notify(ctx context.Context, notification cart.Notification) {
	Publish(ctx, n.publisher, n.logger, FromNotification(n.sessionID, notification, time.Now().UTC()))
}
