package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	contextKeyUserID    contextKey = "user_id"
	contextKeyUsername  contextKey = "username"
	contextKeyAccessID  contextKey = "access_id"
	contextKeyRequestID contextKey = "request_id"
)

// WithIdentity stores the authenticated identity on the context.
func WithIdentity(ctx context.Context, userID uuid.UUID, username, accessID string) context.Context {
	ctx = context.WithValue(ctx, contextKeyUserID, userID)
	ctx = context.WithValue(ctx, contextKeyUsername, username)
	return context.WithValue(ctx, contextKeyAccessID, accessID)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(contextKeyUserID).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(contextKeyUsername).(string)
	return username, ok && username != ""
}

// AccessIDFromContext returns the session access id, if any.
func AccessIDFromContext(ctx context.Context) (string, bool) {
	accessID, ok := ctx.Value(contextKeyAccessID).(string)
	return accessID, ok && accessID != ""
}

// RequestIDFromContext returns the request id, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(contextKeyRequestID).(string)
	return requestID, ok && requestID != ""
}
