package model

import "context"

// ContextManager moves the authenticated user id through request context.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID int64) context.Context
	GetUserIDFromContext(ctx context.Context) (int64, bool)
}
