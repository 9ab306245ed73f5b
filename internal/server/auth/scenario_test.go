package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_LoginThenResolve(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice", "alice@example.com", "s3cr3t")
	ctx := context.Background()

	tok, err := f.authn.Login(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	caller, err := f.res.ResolveCaller(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, caller.ID)
	assert.Equal(t, "alice", caller.Username)
}

func TestScenario_WrongPassword(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "s3cr3t")

	_, err := f.authn.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, common.ErrAuthenticationFailed)
}

func TestScenario_ExpiredToken(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice", "alice@example.com", "s3cr3t")

	tok, err := f.authn.IssueToken(alice, -time.Second)
	require.NoError(t, err)

	s := f.res.Resolve(context.Background(), tok.AccessToken)
	assert.Equal(t, StateRejected, s.State)
	assert.Nil(t, s.User)
}

func TestScenario_DeletedUser(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice", "alice@example.com", "s3cr3t")
	ctx := context.Background()

	tok, err := f.authn.IssueToken(alice, 0)
	require.NoError(t, err)

	require.NoError(t, f.store.Delete(ctx, alice.ID))

	s := f.res.Resolve(ctx, tok.AccessToken)
	assert.Equal(t, StateRejected, s.State)
	assert.Nil(t, s.User, "a deleted user must not resolve to a stale identity")
	assert.Equal(t, common.ErrInvalidCredentials, s.Err)
}

func TestScenario_UsernameReusedAfterDeletion(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice", "alice@example.com", "s3cr3t")
	ctx := context.Background()

	tok, err := f.authn.IssueToken(alice, 0)
	require.NoError(t, err)

	require.NoError(t, f.store.Delete(ctx, alice.ID))
	mallory := f.register(t, "alice", "mallory@example.com", "other")
	require.NotEqual(t, alice.ID, mallory.ID)

	s := f.res.Resolve(ctx, tok.AccessToken)
	assert.Equal(t, StateRejected, s.State)
	assert.Equal(t, ReasonUnknownSubject, s.Reason)
	assert.Nil(t, s.User)

	fresh, err := f.authn.Login(ctx, "alice", "other")
	require.NoError(t, err)
	caller, err := f.res.ResolveCaller(ctx, fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, mallory.ID, caller.ID)
}
