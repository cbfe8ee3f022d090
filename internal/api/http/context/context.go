// Package context provides helpers for passing request identity through
// request contexts.
package context

import (
	"context"
)

type contextKey int

const userIDKey contextKey = iota

// Manager sets and gets the authenticated user ID on request contexts.
type Manager struct{}

// NewManager returns a new context manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a child context carrying the user ID.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext extracts the user ID set by the auth middleware.
// The second return value reports whether an ID was present.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
