// Package server wires the GopherShop server together: configuration,
// logging, the database and its migrations, the services and auth core,
// and the HTTP and gRPC endpoints with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/server/auth"
	"github.com/dmitrijs2005/gophershop/internal/server/config"
	"github.com/dmitrijs2005/gophershop/internal/server/metrics"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophershop/internal/server/rest"
	"github.com/dmitrijs2005/gophershop/internal/server/services"

	gs "github.com/dmitrijs2005/gophershop/internal/server/grpc"
)

// Seams for tests.
var (
	openDB         = repomanager.Open
	newRepoManager = func() repomanager.RepositoryManager {
		return repomanager.NewPostgresRepositoryManager()
	}
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	handler    http.Handler
	grpcServer *gs.GRPCServer
}

// NewApp validates the configuration, connects to the database, applies
// migrations and builds both endpoints. Any failure here is fatal.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db, newRepoManager())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	codec, err := auth.NewCodec([]byte(c.SecretKey), c.SigningAlgorithm)
	if err != nil {
		return nil, err
	}
	hasher := auth.NewBcryptHasher(c.BcryptCost)
	store := rm.Users(db)

	authn, err := auth.NewAuthenticator(store, hasher, codec, c.AccessTokenValidityDuration, logger)
	if err != nil {
		return nil, err
	}
	resolver := auth.NewResolver(codec, store, logger)
	m := metrics.New()

	handler := rest.NewRouter(rest.Deps{
		Authenticator: authn,
		Resolver:      resolver,
		Users:         services.NewUserService(db, rm, hasher),
		Products:      services.NewProductService(db, rm),
		Images:        services.NewImageService(db, rm, c),
		Carts:         services.NewCartService(db, rm),
		Orders:        services.NewOrderService(db, rm),
		Inquiries:     services.NewInquiryService(db, rm),
		Metrics:       m,
		Logger:        logger,
		LoginRPM:      c.LoginRateLimitRPM,
		Ready:         db.PingContext,
	})

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		handler:    handler,
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, resolver, m),
	}, nil
}

// Handler exposes the HTTP router.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) serveHTTP(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Run serves both endpoints until ctx is cancelled or SIGINT, SIGTERM or
// SIGQUIT arrives, then shuts them down and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "closing database", "error", err)
		}
	}()

	lis, err := net.Listen("tcp", app.config.EndpointAddrHTTP)
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.serveHTTP(ctx, lis) })
	g.Go(func() error {
		if err := app.grpcServer.Run(ctx); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	err = g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}
