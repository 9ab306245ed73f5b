// Package auth is the authentication core of the shop: password hashing,
// bearer-token encoding, login and per-request caller resolution.
//
// Nothing in this package keeps mutable state between calls, so a single
// Authenticator and Resolver serve all requests concurrently.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

// CredentialStore is the read side of the user store that the core needs.
// Both methods return common.ErrorNotFound when no user matches.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// Token is the result of a successful login.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"-"`
}

// dummyPassword is hashed once per Authenticator. Unknown usernames are
// checked against that hash so they cost as much as a wrong password.
const dummyPassword = "gophershop-dummy-password"

type Authenticator struct {
	store      CredentialStore
	hasher     PasswordHasher
	codec      *Codec
	defaultTTL time.Duration
	dummyHash  string
	now        func() time.Time
	log        logging.Logger
}

// NewAuthenticator wires the login side of the core. defaultTTL is used by
// IssueToken when it is called with a zero ttl.
func NewAuthenticator(store CredentialStore, hasher PasswordHasher, codec *Codec, defaultTTL time.Duration, log logging.Logger) (*Authenticator, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &Authenticator{
		store:      store,
		hasher:     hasher,
		codec:      codec,
		defaultTTL: defaultTTL,
		dummyHash:  dummy,
		now:        time.Now,
		log:        log.With("module", "authenticator"),
	}, nil
}

// Authenticate checks a username and password. An unknown user and a wrong
// password both yield common.ErrAuthenticationFailed. Store failures other
// than not-found are returned wrapped and are not authentication failures.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.hasher.Verify(password, a.dummyHash)
			a.log.Info(ctx, "login rejected", "reason", "unknown user")
			return nil, common.ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("credential lookup: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.log.Info(ctx, "login rejected", "reason", "password mismatch", "user_id", user.ID)
		return nil, common.ErrAuthenticationFailed
	}

	return user, nil
}

// IssueToken signs a token whose subject is the user's username, which also
// carries the user's id, and which expires ttl from now. A zero ttl selects the configured default; a
// negative ttl yields a token that is already expired.
func (a *Authenticator) IssueToken(user *models.User, ttl time.Duration) (Token, error) {
	if ttl == 0 {
		ttl = a.defaultTTL
	}
	expiresAt := a.now().Add(ttl)

	s, err := a.codec.Encode(map[string]any{
		common.SubjectClaim: user.Username,
		common.UserIDClaim:  user.ID,
	}, expiresAt)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{AccessToken: s, TokenType: common.BearerScheme, ExpiresAt: expiresAt}, nil
}

// Login authenticates the credentials and issues a token with the default TTL.
func (a *Authenticator) Login(ctx context.Context, username, password string) (Token, error) {
	user, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return Token{}, err
	}

	tok, err := a.IssueToken(user, 0)
	if err != nil {
		return Token{}, err
	}

	a.log.Info(ctx, "login succeeded", "user_id", user.ID)
	return tok, nil
}
