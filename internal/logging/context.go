package logging

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying r.
func NewContext(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the Registry stored in ctx, or nil.
func FromContext(ctx context.Context) *Registry {
	if ctx == nil {
		return nil
	}
	r, _ := ctx.Value(contextKey{}).(*Registry)
	return r
}

// MainFromContext returns the main logger of the Registry stored in ctx.
// Commands that run without a configured Registry get a logger that
// discards everything.
func MainFromContext(ctx context.Context) *slog.Logger {
	if r := FromContext(ctx); r != nil {
		if l := r.Main(); l != nil {
			return l
		}
	}
	return NewDiscard()
}
