// Package rest provides HTTP handlers for cart operations.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/abgdnv/gocart/internal/cart"
	carterrors "github.com/abgdnv/gocart/internal/errors"
	"github.com/abgdnv/gocart/internal/service"
	"github.com/abgdnv/gocart/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Handler struct {
	service  service.CartService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the cart API with the provided service.
func NewHandler(service service.CartService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),

		logger: logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the cart service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(web.SessionMiddleware)
		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/items", h.AddItem)
			r.Post("/items/{index}/increase", h.IncreaseQuantity)
			r.Post("/items/{index}/decrease", h.DecreaseQuantity)
			r.Delete("/items/{index}", h.RemoveItem)
			r.Post("/products/{product}/increase", h.IncreaseProduct)
			r.Post("/products/{product}/decrease", h.DecreaseProduct)
			r.Delete("/products/{product}", h.RemoveProduct)
			r.Post("/checkout", h.Checkout)
			r.Post("/checkout/complete", h.CompleteCheckout)
		})
	})
	r.Get("/api/v1/ui/settings", h.UISettings)
	r.Get("/healthz", h.HealthCheck)
}

// Get returns the session's cart.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	mLogger := h.logger
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	found, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// AddItem adds one unit of the product in the request body.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.logger
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	var addItemDto service.AddItemDto
	if err := json.NewDecoder(r.Body).Decode(&addItemDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to add item", "product", addItemDto.Product)
	if err := h.validate.Struct(addItemDto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.AddItem(r.Context(), sessionID, addItemDto)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Item added to cart", "product", addItemDto.Product, "items", updated.TotalItemCount)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

func (h *Handler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.byIndex(w, r, h.service.IncreaseQuantity)
}

func (h *Handler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.byIndex(w, r, h.service.DecreaseQuantity)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.byIndex(w, r, h.service.RemoveItem)
}

func (h *Handler) IncreaseProduct(w http.ResponseWriter, r *http.Request) {
	h.byProduct(w, r, h.service.IncreaseProduct)
}

func (h *Handler) DecreaseProduct(w http.ResponseWriter, r *http.Request) {
	h.byProduct(w, r, h.service.DecreaseProduct)
}

func (h *Handler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	h.byProduct(w, r, h.service.RemoveProduct)
}

// Checkout starts checkout; an empty cart answers 409 with the empty-cart notification.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.checkout(w, r, h.service.Checkout)
}

// CompleteCheckout is called by the checkout page once the order is placed.
func (h *Handler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	h.checkout(w, r, h.service.CompleteCheckout)
}

// UISettings returns the storefront page behavior settings.
func (h *Handler) UISettings(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, h.service.UISettings())
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type indexOp func(ctx context.Context, sessionID uuid.UUID, index int) (*service.CartDto, error)

type productOp func(ctx context.Context, sessionID uuid.UUID, product string) (*service.CartDto, error)

type checkoutOp func(ctx context.Context, sessionID uuid.UUID) (*service.CheckoutDto, error)

func (h *Handler) byIndex(w http.ResponseWriter, r *http.Request, op indexOp) {
	mLogger := h.logger
	index, ok := web.ParsePathGte(r, w, mLogger, "index", 0)
	if !ok {
		return
	}
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	updated, err := op(r.Context(), sessionID, index)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err)
		return
	}
	if !updated.Changed {
		mLogger.DebugContext(r.Context(), "Stale cart index ignored", "index", index)
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

func (h *Handler) byProduct(w http.ResponseWriter, r *http.Request, op productOp) {
	mLogger := h.logger
	product, err := productParam(r)
	if err != nil {
		web.RespondError(w, mLogger, http.StatusBadRequest, "product parameter is not a valid path segment")
		return
	}
	if product == "" {
		web.RespondError(w, mLogger, http.StatusBadRequest, "product parameter is required")
		return
	}
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	updated, err := op(r.Context(), sessionID, product)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// productParam returns the decoded product name. chi matches against RawPath when the
// request carries one (e.g. an escaped "/"), leaving the value percent-encoded.
func productParam(r *http.Request) (string, error) {
	product := r.PathValue("product")
	if r.URL.RawPath == "" {
		return product, nil
	}
	return url.PathUnescape(product)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request, op checkoutOp) {
	mLogger := h.logger
	sessionID, ok := web.GetSessionID(w, r, mLogger)
	if !ok {
		return
	}
	result, err := op(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, r, mLogger, err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, result)
}

// respondServiceError maps service errors to HTTP statuses.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, err error) {
	switch {
	case errors.Is(err, carterrors.ErrInvalidProduct), errors.Is(err, carterrors.ErrInvalidPrice),
		errors.Is(err, carterrors.ErrInvalidSession):
		mLogger.WarnContext(r.Context(), "Invalid cart request", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
	case errors.Is(err, carterrors.ErrEmptyCart):
		n := cart.CheckoutEmptyNotification()
		settings := h.service.UISettings()
		web.RespondJSON(w, mLogger, http.StatusConflict, map[string]any{
			"error": err.Error(),
			"notification": service.NotificationDto{
				Kind:           string(n.Kind),
				Message:        n.Message,
				DismissAfterMs: settings.NotificationDismissMs,
			},
		})
	case errors.Is(err, carterrors.ErrMalformedSnapshot):
		mLogger.WarnContext(r.Context(), "Stored cart is malformed", "error", err)
		web.RespondError(w, mLogger, http.StatusUnprocessableEntity, "Stored cart is malformed")
	case errors.Is(err, carterrors.ErrStorageUnavailable):
		mLogger.ErrorContext(r.Context(), "Cart storage unavailable", "error", err)
		web.RespondError(w, mLogger, http.StatusServiceUnavailable, "Cart storage is temporarily unavailable")
	default:
		mLogger.ErrorContext(r.Context(), "Error processing cart request", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to process cart request")
	}
}
