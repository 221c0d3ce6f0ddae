// Package runid tags each audit run with a unique identifier so log lines
// from overlapping runs (watch mode) can be told apart.
package runid

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// New returns a fresh run ID.
func New() string {
	return uuid.New().String()
}

// NewContext returns a context that carries the given run ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the run ID stored in ctx, or an empty string.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
