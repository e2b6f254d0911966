// Package logger provides slog handlers that enrich records with request-scoped values.
package logger

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

// AttrExtractor pulls an attribute out of a context. ok is false when the value is absent.
type AttrExtractor func(ctx context.Context) (attr slog.Attr, ok bool)

// ContextHandler is a wrapper around slog.Handler that adds context information.
type ContextHandler struct {
	slog.Handler
	extractors []AttrExtractor
}

// NewContextHandler creates a new ContextHandler. Trace and request ids are always extracted;
// extra extractors run after them.
func NewContextHandler(handler slog.Handler, extra ...AttrExtractor) *ContextHandler {
	extractors := append([]AttrExtractor{traceID, requestID}, extra...)
	return &ContextHandler{
		Handler:    handler,
		extractors: extractors,
	}
}

// Enabled reports whether the handler records at the given level.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.Handler.Enabled(ctx, level)
}

// Handle processes a log record and adds context information.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok {
			r.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler with the given attributes added.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		Handler:    h.Handler.WithAttrs(attrs),
		extractors: h.extractors,
	}
}

// WithGroup returns a new ContextHandler with the given group added.
func (h *ContextHandler) WithGroup(group string) slog.Handler {
	return &ContextHandler{
		Handler:    h.Handler.WithGroup(group),
		extractors: h.extractors,
	}
}

func traceID(ctx context.Context) (slog.Attr, bool) {
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return slog.String("trace_id", span.SpanContext().TraceID().String()), true
	}
	return slog.Attr{}, false
}

func requestID(ctx context.Context) (slog.Attr, bool) {
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		return slog.String("request_id", reqID), true
	}
	return slog.Attr{}, false
}
