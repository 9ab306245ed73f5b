package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/dbx"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

const orderColumns = `id, user_id, placed_at, total_cost, payment_id, status_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	query :=
		`INSERT INTO orders (user_id, placed_at, total_cost, payment_id, status_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, o.UserID, o.Date, o.TotalCost, o.PaymentID, o.StatusID).Scan(&o.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY id`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id OFFSET $1 LIMIT $2`
	return r.list(ctx, query, offset, limit)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, statusID int) (*models.Order, error) {
	query := `UPDATE orders SET status_id = $2 WHERE id = $1 RETURNING ` + orderColumns
	return scanOne(r.db.QueryRowContext(ctx, query, id, statusID))
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Order, 0)
	for rows.Next() {
		o := &models.Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.Date, &o.TotalCost, &o.PaymentID, &o.StatusID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func scanOne(row *sql.Row) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(&o.ID, &o.UserID, &o.Date, &o.TotalCost, &o.PaymentID, &o.StatusID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return o, nil
}
