package inquiries

import (
	"context"

	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, in *models.Inquiry) (*models.Inquiry, error)
	Get(ctx context.Context, id int64) (*models.Inquiry, error)
	List(ctx context.Context, offset, limit int) ([]*models.Inquiry, error)
}
