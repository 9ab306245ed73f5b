package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/repomanager"
)

type CartService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCartService(db *sql.DB, m repomanager.RepositoryManager) *CartService {
	return &CartService{db: db, repomanager: m}
}

func (s *CartService) List(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	return s.repomanager.Carts(s.db).ListByUser(ctx, userID)
}

// Add puts quantity units of a product into the user's cart. An unknown
// product yields common.ErrorNotFound.
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", common.ErrorValidation)
	}

	if _, err := s.repomanager.Products(s.db).Get(ctx, productID); err != nil {
		return nil, err
	}

	return s.repomanager.Carts(s.db).Add(ctx, &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}
