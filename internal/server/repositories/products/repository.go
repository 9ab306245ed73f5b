package products

import (
	"context"

	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, offset, limit int) ([]*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	SetImage(ctx context.Context, id int64, key string) error
	Delete(ctx context.Context, id int64) error
}
