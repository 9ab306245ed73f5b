package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/repomanager"
)

const maxInquiryLen = 4000

type InquiryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewInquiryService(db *sql.DB, m repomanager.RepositoryManager) *InquiryService {
	return &InquiryService{db: db, repomanager: m, now: time.Now}
}

func (s *InquiryService) Create(ctx context.Context, userID int64, message string) (*models.Inquiry, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(message) > maxInquiryLen {
		return nil, fmt.Errorf("%w: message is longer than %d characters", common.ErrorValidation, maxInquiryLen)
	}

	return s.repomanager.Inquiries(s.db).Create(ctx, &models.Inquiry{
		UserID:  userID,
		Date:    s.now().UTC(),
		Message: message,
	})
}

func (s *InquiryService) Get(ctx context.Context, id int64) (*models.Inquiry, error) {
	return s.repomanager.Inquiries(s.db).Get(ctx, id)
}

func (s *InquiryService) List(ctx context.Context, skip, limit int) ([]*models.Inquiry, error) {
	skip, limit = page(skip, limit)
	return s.repomanager.Inquiries(s.db).List(ctx, skip, limit)
}
