package grpc

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/server/auth"
	"github.com/dmitrijs2005/gophershop/internal/server/metrics"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
	"github.com/dmitrijs2005/gophershop/internal/server/repositories/users"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type testAuth struct {
	store *users.MemoryRepository
	authn *auth.Authenticator
	res   *auth.Resolver
}

func newTestAuth(t *testing.T) *testAuth {
	t.Helper()
	codec, err := auth.NewCodec([]byte(strings.Repeat("g", 32)), "HS256")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	store := users.NewMemoryRepository()
	authn, err := auth.NewAuthenticator(store, auth.NewBcryptHasher(bcrypt.MinCost), codec, time.Hour, nopLogger{})
	if err != nil {
		t.Fatalf("NewAuthenticator: %v", err)
	}
	return &testAuth{store: store, authn: authn, res: auth.NewResolver(codec, store, nopLogger{})}
}

func (a *testAuth) tokenFor(t *testing.T, username string, ttl time.Duration) (*models.User, string) {
	t.Helper()
	u, err := a.store.Create(context.Background(), &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	tok, err := a.authn.IssueToken(u, ttl)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return u, tok.AccessToken
}

func newTestServer(t *testing.T) (*GRPCServer, *testAuth) {
	t.Helper()
	a := newTestAuth(t)
	return NewGRPCServer("127.0.0.1:0", nopLogger{}, a.res, metrics.New()), a
}
