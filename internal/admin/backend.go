package admin

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/server/auth"
	"github.com/dmitrijs2005/gophershop/internal/server/config"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophershop/internal/server/services"
)

type accounts interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type tokenIssuer interface {
	IssueToken(user *models.User, ttl time.Duration) (auth.Token, error)
}

type imagePresigner interface {
	PresignUpload(ctx context.Context, productID int64) (*services.ImageUpload, error)
}

// backend is what the database-backed commands work against.
type backend struct {
	accounts accounts
	tokens   tokenIssuer
	images   imagePresigner
	close    func() error
}

// openBackend loads the server configuration, connects to the database and
// applies migrations. It is a seam for tests.
var openBackend = func(ctx context.Context, args []string) (*backend, error) {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	b, err := newBackend(ctx, cfg, db, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	b.close = db.Close
	return b, nil
}

func newBackend(ctx context.Context, cfg *config.Config, db *sql.DB, rm repomanager.RepositoryManager) (*backend, error) {
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	codec, err := auth.NewCodec([]byte(cfg.SecretKey), cfg.SigningAlgorithm)
	if err != nil {
		return nil, err
	}
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	authn, err := auth.NewAuthenticator(rm.Users(db), hasher, codec, cfg.AccessTokenValidityDuration, logging.Nop())
	if err != nil {
		return nil, err
	}

	return &backend{
		accounts: services.NewUserService(db, rm, hasher),
		tokens:   authn,
		images:   services.NewImageService(db, rm, cfg),
		close:    func() error { return nil },
	}, nil
}
