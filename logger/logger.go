// Package logger wires slog so that attributes stashed in a context ride
// along on every record logged with that context.
package logger

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey struct{}

// Handler wraps a base [slog.Handler] and folds context-carried attributes
// into each record before handing off.
type Handler struct {
	slog.Handler
}

// Setup installs the default logger, emitting either text or json depending
// on format.
func Setup(format string) *slog.Logger {
	var base slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if format == "json" {
		base = slog.NewJSONHandler(os.Stderr, nil)
	}

	l := slog.New(Handler{Handler: base})
	slog.SetDefault(l)

	return l
}

// Handle implements [slog.Handler].
func (h Handler) Handle(ctx context.Context, record slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		record.AddAttrs(attrs...)
	}

	return h.Handler.Handle(ctx, record)
}

// With returns a context whose attributes the [Handler] will attach to any
// record logged against it.
func With(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing, _ := ctx.Value(ctxKey{}).([]slog.Attr)

	combined := make([]slog.Attr, 0, len(existing)+len(attrs))
	combined = append(combined, existing...)
	combined = append(combined, attrs...)

	return context.WithValue(ctx, ctxKey{}, combined)
}
