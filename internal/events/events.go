// Package events defines the cart events published to the message broker.
package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/gocart/pkg/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemAddedEvent struct {
	SessionID  uuid.UUID `json:"session_id"`
	Product    string    `json:"product"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e ItemAddedEvent) Subject() string {
	return messaging.CartItemAddedSubject
}

func (e ItemAddedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ItemRemovedEvent struct {
	SessionID  uuid.UUID `json:"session_id"`
	Product    string    `json:"product"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e ItemRemovedEvent) Subject() string {
	return messaging.CartItemRemovedSubject
}

func (e ItemRemovedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// CheckoutRejectedEvent is raised when checkout is attempted on an empty cart.
type CheckoutRejectedEvent struct {
	SessionID  uuid.UUID `json:"session_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e CheckoutRejectedEvent) Subject() string {
	return messaging.CartCheckoutRejectedSubject
}

func (e CheckoutRejectedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type CheckoutStartedEvent struct {
	SessionID  uuid.UUID       `json:"session_id"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Message    string          `json:"message"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func (e CheckoutStartedEvent) Subject() string {
	return messaging.CartCheckoutStartedSubject
}

func (e CheckoutStartedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type CheckedOutItem struct {
	Product   string          `json:"product"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// CheckedOutEvent carries the cart contents at checkout completion.
type CheckedOutEvent struct {
	SessionID   uuid.UUID        `json:"session_id"`
	Items       []CheckedOutItem `json:"items"`
	TotalPrice  decimal.Decimal  `json:"total_price"`
	ItemCount   int              `json:"item_count"`
	CompletedAt time.Time        `json:"completed_at"`
}

func (e CheckedOutEvent) Subject() string {
	return messaging.CartCheckedOutSubject
}

func (e CheckedOutEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
