package users

import (
	"context"

	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

// Repository stores user identities. Lookups return common.ErrorNotFound
// when nothing matches; Create returns common.ErrorAlreadyExists when the
// username or email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
