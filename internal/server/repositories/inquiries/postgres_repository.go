package inquiries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/dbx"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, in *models.Inquiry) (*models.Inquiry, error) {
	query :=
		`INSERT INTO inquiries (user_id, created_at, message)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	if err := r.db.QueryRowContext(ctx, query, in.UserID, in.Date, in.Message).Scan(&in.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return in, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Inquiry, error) {
	query :=
		`SELECT id, user_id, created_at, message FROM inquiries
		 WHERE id = $1
		 `

	in := &models.Inquiry{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&in.ID, &in.UserID, &in.Date, &in.Message)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return in, nil
}

func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*models.Inquiry, error) {
	query :=
		`SELECT id, user_id, created_at, message FROM inquiries
		 ORDER BY id
		 OFFSET $1 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Inquiry, 0)
	for rows.Next() {
		in := &models.Inquiry{}
		if err := rows.Scan(&in.ID, &in.UserID, &in.Date, &in.Message); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
