package auth

import (
	"context"
	"errors"
)

// UserContext carries the authenticated caller's identity through a request
type UserContext struct {
	UserID string
	Email  string
}

type contextKey string

const userContextKey contextKey = "user"

// ErrNoUserInContext is returned when a request context has no authenticated user
var ErrNoUserInContext = errors.New("no user in context")

// SetUserInContext adds the user to the context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user from the context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
