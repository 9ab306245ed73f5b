package orders

import (
	"context"

	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, o *models.Order) (*models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Order, error)
	List(ctx context.Context, offset, limit int) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, statusID int) (*models.Order, error)
}
