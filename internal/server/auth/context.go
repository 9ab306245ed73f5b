package auth

import (
	"context"

	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

type ctxKey struct{}

// ContextWithUser returns a copy of ctx carrying the resolved caller.
func ContextWithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the caller stored by ContextWithUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*models.User)
	return u, ok && u != nil
}
