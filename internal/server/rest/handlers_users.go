package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophershop/internal/server/auth"
	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

const detailUserNotFound = "User not found"

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// caller returns the user placed in the context by authMiddleware.
func caller(r *http.Request) *models.User {
	u, _ := auth.UserFromContext(r.Context())
	return u
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidBody)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err, detailUserNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, caller(r))
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), caller(r).ID); err != nil {
		h.writeError(w, r, err, detailUserNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, detailInvalidID)
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, detailUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
