package cart

import (
	"context"
	"fmt"
)

// NotificationKind identifies the cart event behind a notification.
type NotificationKind string

const (
	ItemAdded       NotificationKind = "item_added"
	ItemRemoved     NotificationKind = "item_removed"
	CheckoutEmpty   NotificationKind = "checkout_empty"
	CheckoutStarted NotificationKind = "checkout_started"
)

// Notification is a transient, display-only message raised by a cart event.
// The cart only raises it; showing and dismissing it is up to the page.
type Notification struct {
	Kind    NotificationKind
	Product string
	Message string
}

func ItemAddedNotification(product string) Notification {
	return Notification{Kind: ItemAdded, Product: product, Message: fmt.Sprintf("%s added to cart!", product)}
}

func ItemRemovedNotification(product string) Notification {
	return Notification{Kind: ItemRemoved, Product: product, Message: "Item removed from cart"}
}

func CheckoutEmptyNotification() Notification {
	return Notification{Kind: CheckoutEmpty, Message: "Your cart is empty. Please add items before checking out."}
}

func CheckoutStartedNotification() Notification {
	return Notification{Kind: CheckoutStarted, Message: "Proceeding to checkout!"}
}

// Notifier receives notifications raised by a Store.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}
