package web

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type requestIDKey struct{}

type sessionIDKey struct{}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and a boolean indicating whether it was found.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// WithSessionID adds a cart session ID to the context.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionID retrieves the cart session ID from the context.
func SessionID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// SessionAttr is a logger.AttrExtractor adding session_id to log records.
func SessionAttr(ctx context.Context) (slog.Attr, bool) {
	id, ok := SessionID(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("session_id", id.String()), true
}
