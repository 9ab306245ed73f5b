package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/server/auth"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/repomanager"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	maxPasswordLen = 72
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher) *UserService {
	return &UserService{db: db, repomanager: m, hasher: hasher}
}

// Register validates the input, hashes the password and stores the user.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: username or email already registered", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByUsername(ctx, username)
}

// Delete removes the account. Tokens already issued for it stop resolving.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Users(s.db).Delete(ctx, id)
}

func validateRegistration(username, email, password string) error {
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return fmt.Errorf("%w: username must be %d to %d characters", common.ErrorValidation, minUsernameLen, maxUsernameLen)
	}
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("%w: email is not valid", common.ErrorValidation)
	}
	if n := len(password); n < minPasswordLen || n > maxPasswordLen {
		return fmt.Errorf("%w: password must be %d to %d bytes", common.ErrorValidation, minPasswordLen, maxPasswordLen)
	}
	return nil
}
