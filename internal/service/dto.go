package service

import (
	"fmt"

	"github.com/abgdnv/gocart/internal/cart"
	"github.com/abgdnv/gocart/pkg/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemDto represents the request to add one unit of a product.
type AddItemDto struct {
	Product string           `json:"product" validate:"required,max=200"`
	Price   *decimal.Decimal `json:"price" validate:"required"`
}

// CartDto is the rendered view of a session's cart.
// Visible tells the page whether to show the cart section at all.
type CartDto struct {
	SessionID      uuid.UUID         `json:"session_id"`
	Items          []LineItemDto     `json:"items"`
	TotalPrice     decimal.Decimal   `json:"total_price"`
	TotalItemCount int               `json:"total_item_count"`
	DisplayTotal   string            `json:"display_total"`
	Display        string            `json:"display"`
	Visible        bool              `json:"visible"`
	Changed        bool              `json:"changed"`
	Notifications  []NotificationDto `json:"notifications,omitempty"`
}

type LineItemDto struct {
	Index            int             `json:"index"`
	Product          string          `json:"product"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Quantity         int             `json:"quantity"`
	LineTotal        decimal.Decimal `json:"line_total"`
	Label            string          `json:"label"`
	DisplayUnitPrice string          `json:"display_unit_price,omitempty"`
	DisplayLineTotal string          `json:"display_line_total"`
}

type NotificationDto struct {
	Kind           string `json:"kind"`
	Message        string `json:"message"`
	DismissAfterMs int64  `json:"dismiss_after_ms"`
}

// CheckoutDto is returned by Checkout and CompleteCheckout.
type CheckoutDto struct {
	Cart       *CartDto `json:"cart"`
	RedirectTo string   `json:"redirect_to,omitempty"`
	Completed  bool     `json:"completed"`
}

// UISettingsDto describes the page behavior the storefront should apply.
type UISettingsDto struct {
	Display               string `json:"display"`
	MobileNav             string `json:"mobile_nav"`
	MobileBreakpointPx    int    `json:"mobile_breakpoint_px"`
	ScrollThresholdPx     int    `json:"scroll_threshold_px"`
	NavHideScrollDeltaPx  int    `json:"nav_hide_scroll_delta_px"`
	NotificationDismissMs int64  `json:"notification_dismiss_ms"`
	CurrencyPrefix        string `json:"currency_prefix"`
	CheckoutPage          string `json:"checkout_page"`
}

func formatMoney(prefix string, d decimal.Decimal) string {
	return prefix + d.StringFixed(2)
}

// toCartDto renders c in the configured display mode.
func (s *Service) toCartDto(sessionID uuid.UUID, c *cart.Store, changed bool, notes []cart.Notification) *CartDto {
	items := c.Items()
	dto := &CartDto{
		SessionID:      sessionID,
		Items:          make([]LineItemDto, 0, len(items)),
		TotalPrice:     c.TotalPrice(),
		TotalItemCount: c.TotalItemCount(),
		Display:        s.ui.Display,
		Visible:        len(items) > 0,
		Changed:        changed,
	}
	dto.DisplayTotal = formatMoney(s.cartCfg.CurrencyPrefix, dto.TotalPrice)

	for i, it := range items {
		line := LineItemDto{
			Index:            i,
			Product:          it.Product,
			UnitPrice:        it.UnitPrice,
			Quantity:         it.Quantity,
			LineTotal:        it.LineTotal(),
			DisplayLineTotal: formatMoney(s.cartCfg.CurrencyPrefix, it.LineTotal()),
		}
		if s.ui.Display == config.DisplayCompact {
			line.Label = fmt.Sprintf("%s (x%d)", it.Product, it.Quantity)
		} else {
			line.Label = it.Product
			line.DisplayUnitPrice = formatMoney(s.cartCfg.CurrencyPrefix, it.UnitPrice)
		}
		dto.Items = append(dto.Items, line)
	}

	for _, n := range notes {
		dto.Notifications = append(dto.Notifications, s.toNotificationDto(n))
	}
	return dto
}

func (s *Service) toNotificationDto(n cart.Notification) NotificationDto {
	return NotificationDto{
		Kind:           string(n.Kind),
		Message:        n.Message,
		DismissAfterMs: s.ui.NotificationDismiss.Milliseconds(),
	}
}
