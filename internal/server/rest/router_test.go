package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophershop/internal/server/metrics"
)

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestHealthAndReadiness(t *testing.T) {
	var readyErr error
	e := newTestEnv(t, func(d *Deps) {
		d.Ready = func(context.Context) error { return readyErr }
	})

	rec := e.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	readyErr = errors.New("db down")
	rec = e.do(http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice", "s3cr3t")

	rec := e.postForm("/token", url.Values{"username": {"alice"}, "password": {"s3cr3t"}})
	require.Equal(t, http.StatusOK, rec.Code)
	var tok map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.NotEmpty(t, tok["access_token"])
	assert.Equal(t, "bearer", tok["token_type"])

	rec = e.do(http.MethodGet, "/token?username=alice&password=s3cr3t", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	me := e.do(http.MethodGet, "/users/me", tok["access_token"], "")
	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"username":"alice"`)

	wrong := e.postForm("/token", url.Values{"username": {"alice"}, "password": {"nope"}})
	ghost := e.postForm("/token", url.Values{"username": {"ghost"}, "password": {"nope"}})
	for _, rec := range []*httptest.ResponseRecorder{wrong, ghost} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		assert.Equal(t, "Incorrect username or password", decodeDetail(t, rec))
	}
	assert.Equal(t, wrong.Body.String(), ghost.Body.String())

	rec = e.postForm("/token", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.InDelta(t, 2, testutil.ToFloat64(e.metrics.AuthLogins.WithLabelValues(metrics.LoginSuccess)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(e.metrics.AuthLogins.WithLabelValues(metrics.LoginFailure)), 0)
}

func TestProtectedRoutesRejectUniformly(t *testing.T) {
	e := newTestEnv(t)
	alice := e.register(t, "alice", "s3cr3t")
	gone := e.register(t, "gone", "s3cr3t")

	expired := e.token(t, alice, -time.Minute)
	orphan := e.token(t, gone, time.Minute)
	require.NoError(t, e.store.Delete(context.Background(), gone.ID))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic YWxpY2U6czNjcjN0"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"deleted user", "Bearer " + orphan},
	}

	var first string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			e.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.Equal(t, "Invalid authentication credentials", decodeDetail(t, rec))
			if first == "" {
				first = rec.Body.String()
			}
			assert.Equal(t, first, rec.Body.String())
		})
	}

	assert.InDelta(t, 2, testutil.ToFloat64(e.metrics.AuthResolutions.WithLabelValues("missing_token")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(e.metrics.AuthResolutions.WithLabelValues("invalid_token")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(e.metrics.AuthResolutions.WithLabelValues("expired")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(e.metrics.AuthResolutions.WithLabelValues("unknown_subject")), 0)
}

func TestLoginRateLimit(t *testing.T) {
	e := newTestEnv(t, func(d *Deps) { d.LoginRPM = 1 })
	e.register(t, "alice", "s3cr3t")
	form := url.Values{"username": {"alice"}, "password": {"s3cr3t"}}

	assert.Equal(t, http.StatusOK, e.postForm("/token", form).Code)

	rec := e.postForm("/token", form)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many requests", decodeDetail(t, rec))
	assert.InDelta(t, 1, testutil.ToFloat64(e.metrics.AuthLogins.WithLabelValues(metrics.LoginLimited)), 0)

	// Other routes are not throttled.
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/products", "", "").Code)
}

func TestRequestIDAndMetrics(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/products/42", nil)
	req.Header.Set(requestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))
	assert.InDelta(t, 1, testutil.ToFloat64(e.metrics.HTTPRequests.WithLabelValues("GET", "/products/{id}", "404")), 0)

	rec = e.do(http.MethodGet, "/healthz", "", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	rec = e.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gophershop_http_requests_total")
}

func TestRecoverMiddleware(t *testing.T) {
	e := newTestEnv(t)
	e.products.panicOnGet = true

	rec := e.do(http.MethodGet, "/products/1", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeDetail(t, rec))
	assert.InDelta(t, 1, testutil.ToFloat64(e.metrics.HTTPRequests.WithLabelValues("GET", "/products/{id}", "500")), 0,
		"recovered panics are still counted")
}
