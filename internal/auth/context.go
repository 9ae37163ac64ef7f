package auth

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

type userContextKey struct{}

func ContextWithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userContextKey{}, userID)
}

// UserFromContext returns the authenticated caller placed there by Middleware.
func UserFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userContextKey{}).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}
