package auth

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

// SessionState is the position of one request in the resolution process.
type SessionState int

const (
	StateUnauthenticated SessionState = iota
	StateTokenPresented
	StateDecoded
	StateResolved
	StateRejected
)

func (s SessionState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateTokenPresented:
		return "token_presented"
	case StateDecoded:
		return "decoded"
	case StateResolved:
		return "resolved"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

// Rejection reasons. They are for logs and metrics only and never reach
// the caller.
const (
	ReasonMissingToken   = "missing_token"
	ReasonExpired        = "expired"
	ReasonInvalidToken   = "invalid_token"
	ReasonMissingSubject = "missing_subject"
	ReasonUnknownSubject = "unknown_subject"
	ReasonLookupFailed   = "lookup_failed"
)

// Session is the outcome of resolving one bearer token. A Resolved session
// carries the user; a Rejected one carries common.ErrInvalidCredentials.
type Session struct {
	State  SessionState
	User   *models.User
	Err    error
	Reason string
}

// Resolver turns a presented bearer token into the current caller.
type Resolver struct {
	codec *Codec
	store CredentialStore
	log   logging.Logger
}

func NewResolver(codec *Codec, store CredentialStore, log logging.Logger) *Resolver {
	return &Resolver{codec: codec, store: store, log: log.With("module", "resolver")}
}

// Resolve walks a token through decode and subject lookup. Every failure is
// terminal and ends in StateRejected with the same error.
func (r *Resolver) Resolve(ctx context.Context, token string) Session {
	s := Session{State: StateUnauthenticated}
	if token == "" {
		return r.reject(ctx, s, ReasonMissingToken, nil)
	}
	s.State = StateTokenPresented

	claims, err := r.codec.Decode(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return r.reject(ctx, s, ReasonExpired, err)
		}
		return r.reject(ctx, s, ReasonInvalidToken, err)
	}
	s.State = StateDecoded

	subject, _ := claims[common.SubjectClaim].(string)
	if subject == "" {
		return r.reject(ctx, s, ReasonMissingSubject, nil)
	}

	user, err := r.store.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return r.reject(ctx, s, ReasonUnknownSubject, nil)
		}
		r.log.Error(ctx, "credential lookup failed", "error", err)
		return r.reject(ctx, s, ReasonLookupFailed, err)
	}

	// A username freed by deletion and registered again belongs to a new id.
	if id, ok := userID(claims); !ok || id != user.ID {
		return r.reject(ctx, s, ReasonUnknownSubject, nil)
	}

	s.State = StateResolved
	s.User = user
	s.Reason = ""
	return s
}

// ResolveCaller returns the user behind token or common.ErrInvalidCredentials.
func (r *Resolver) ResolveCaller(ctx context.Context, token string) (*models.User, error) {
	s := r.Resolve(ctx, token)
	if s.State != StateResolved {
		return nil, s.Err
	}
	return s.User, nil
}

func userID(claims map[string]any) (int64, bool) {
	n, ok := claims[common.UserIDClaim].(json.Number)
	if !ok {
		return 0, false
	}
	id, err := n.Int64()
	return id, err == nil
}

func (r *Resolver) reject(ctx context.Context, s Session, reason string, cause error) Session {
	args := []any{"reason", reason, "state", s.State.String()}
	if cause != nil {
		args = append(args, "cause", cause.Error())
	}
	r.log.Info(ctx, "token rejected", args...)

	return Session{State: StateRejected, Err: common.ErrInvalidCredentials, Reason: reason}
}
