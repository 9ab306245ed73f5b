package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/dbx"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/repomanager"
)

// StatusPlaced is the status of a freshly placed order.
const StatusPlaced = 1

type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager) *OrderService {
	return &OrderService{db: db, repomanager: m, now: time.Now}
}

// Place turns the user's cart into an order. The total is the sum of
// price × quantity over the cart; the cart is emptied in the same
// transaction. An empty cart is a validation error.
func (s *OrderService) Place(ctx context.Context, userID int64, paymentID string) (*models.Order, error) {
	var order *models.Order

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		items, err := s.repomanager.Carts(tx).ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: cart is empty", common.ErrorValidation)
		}

		products := s.repomanager.Products(tx)
		var total int64
		for _, it := range items {
			p, err := products.Get(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("cart product %d: %w", it.ProductID, err)
			}
			total += p.Price * int64(it.Quantity)
		}

		order, err = s.repomanager.Orders(tx).Create(ctx, &models.Order{
			UserID:    userID,
			Date:      s.now().UTC(),
			TotalCost: total,
			PaymentID: paymentID,
			StatusID:  StatusPlaced,
		})
		if err != nil {
			return err
		}

		return s.repomanager.Carts(tx).ClearByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID int64) ([]*models.Order, error) {
	return s.repomanager.Orders(s.db).ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context, skip, limit int) ([]*models.Order, error) {
	skip, limit = page(skip, limit)
	return s.repomanager.Orders(s.db).List(ctx, skip, limit)
}

// GetOwn returns the order only when it belongs to userID; someone else's
// order is reported as not found.
func (s *OrderService) GetOwn(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	o, err := s.repomanager.Orders(s.db).Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return o, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, statusID int) (*models.Order, error) {
	if statusID < 1 {
		return nil, fmt.Errorf("%w: status_id must be positive", common.ErrorValidation)
	}
	return s.repomanager.Orders(s.db).UpdateStatus(ctx, orderID, statusID)
}
