package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophershop/internal/server/models"
)

const (
	detailProductNotFound = "Product not found"
	detailImageNotFound   = "Product image not found"
)

type productRequest struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

type cartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	items, err := h.products.List(r.Context(), skip, limit)
	if err != nil {
		h.writeError(w, r, err, detailProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, detailInvalidID)
		return
	}
	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, detailProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidBody)
		return
	}
	p, err := h.products.Create(r.Context(), &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(w, r, err, detailProductNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, detailInvalidID)
		return
	}
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidBody)
		return
	}
	p, err := h.products.Update(r.Context(), &models.Product{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(w, r, err, detailProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, detailInvalidID)
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, detailProductNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadProductImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, detailInvalidID)
		return
	}
	upload, err := h.images.PresignUpload(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, detailProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

func (h *Handler) productImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, detailInvalidID)
		return
	}
	url, err := h.images.PresignDownload(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, detailImageNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"download_url": url})
}

func (h *Handler) listCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.carts.List(r.Context(), caller(r).ID)
	if err != nil {
		h.writeError(w, r, err, detailProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidBody)
		return
	}
	item, err := h.carts.Add(r.Context(), caller(r).ID, req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err, detailProductNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// nonNil makes empty listings encode as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
