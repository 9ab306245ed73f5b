package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophershop/internal/common"
	"github.com/dmitrijs2005/gophershop/internal/server/metrics"
)

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.readyWait)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			h.log.Warn(r.Context(), "readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// login exchanges form credentials (query string or urlencoded body) for a
// bearer token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidBody)
		return
	}
	username := r.Form.Get("username")
	password := r.Form.Get("password")
	if username == "" || password == "" {
		writeDetail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.authn.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrAuthenticationFailed) {
			h.metrics.ObserveLogin(metrics.LoginFailure)
			writeUnauthorized(w, detailBadCredentials)
			return
		}
		h.metrics.ObserveLogin(metrics.LoginError)
		h.writeError(w, r, err, detailBadCredentials)
		return
	}

	h.metrics.ObserveLogin(metrics.LoginSuccess)
	writeJSON(w, http.StatusOK, token)
}

func (h *Handler) loginLimited(r *http.Request) {
	h.metrics.ObserveLogin(metrics.LoginLimited)
	h.log.Warn(r.Context(), "login throttled", "client", clientKey(r))
}
