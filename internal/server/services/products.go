package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/repomanager"
)

type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

func (s *ProductService) List(ctx context.Context, skip, limit int) ([]*models.Product, error) {
	skip, limit = page(skip, limit)
	return s.repomanager.Products(s.db).List(ctx, skip, limit)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.repomanager.Products(s.db).Get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	p.ImageURL = ""
	return s.repomanager.Products(s.db).Create(ctx, p)
}

// Update replaces name, price and description. The image key is kept.
func (s *ProductService) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.repomanager.Products(s.db).Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Products(s.db).Delete(ctx, id)
}

func validateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", common.ErrorValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", common.ErrorValidation)
	}
	return nil
}
