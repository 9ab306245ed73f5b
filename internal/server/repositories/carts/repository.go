package carts

import (
	"context"

	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.CartItem, error)
	ClearByUser(ctx context.Context, userID int64) error
}
