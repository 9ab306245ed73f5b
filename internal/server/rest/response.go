package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/gophershop/internal/common"
)

const (
	detailBadCredentials     = "Incorrect username or password"
	detailInvalidCredentials = "Invalid authentication credentials"
	detailInternal           = "Internal server error"
	detailTooManyRequests    = "Too many requests"
	detailInvalidBody        = "Invalid request body"
	detailInvalidID          = "Invalid id"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, statusCode int, detail string) {
	writeJSON(w, statusCode, errorBody{Detail: detail})
}

func writeUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, http.StatusUnauthorized, detail)
}

// writeError maps a service error onto a status code. notFound is the
// detail sent when the error is common.ErrorNotFound.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeDetail(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": "))
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeDetail(w, http.StatusConflict, strings.TrimPrefix(err.Error(), common.ErrorAlreadyExists.Error()+": "))
	default:
		h.log.Error(r.Context(), "request failed",
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
		writeDetail(w, http.StatusInternalServerError, detailInternal)
	}
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

func parseIntDefault(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// pageParams reads skip and limit from the query. Range checks are left to
// the services.
func pageParams(r *http.Request) (int, int) {
	q := r.URL.Query()
	return parseIntDefault(q.Get("skip"), 0), parseIntDefault(q.Get("limit"), 0)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
