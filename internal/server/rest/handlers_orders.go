package rest

import (
	"net/http"
)

const (
	detailOrderNotFound   = "Order not found"
	detailInquiryNotFound = "Inquiry not found"
)

type orderRequest struct {
	PaymentID string `json:"payment_id"`
}

type orderStatusRequest struct {
	StatusID int `json:"status_id"`
}

type inquiryRequest struct {
	Message string `json:"message"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidBody)
		return
	}
	o, err := h.orders.Place(r.Context(), caller(r).ID, req.PaymentID)
	if err != nil {
		h.writeError(w, r, err, detailProductNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	items, err := h.orders.ListMine(r.Context(), caller(r).ID)
	if err != nil {
		h.writeError(w, r, err, detailOrderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

func (h *Handler) listAllOrders(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	items, err := h.orders.ListAll(r.Context(), skip, limit)
	if err != nil {
		h.writeError(w, r, err, detailOrderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, detailInvalidID)
		return
	}
	o, err := h.orders.GetOwn(r.Context(), caller(r).ID, id)
	if err != nil {
		h.writeError(w, r, err, detailOrderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, detailInvalidID)
		return
	}
	var req orderStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidBody)
		return
	}
	o, err := h.orders.UpdateStatus(r.Context(), id, req.StatusID)
	if err != nil {
		h.writeError(w, r, err, detailOrderNotFound)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) createInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if err := decodeBody(r, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, detailInvalidBody)
		return
	}
	in, err := h.inquiries.Create(r.Context(), caller(r).ID, req.Message)
	if err != nil {
		h.writeError(w, r, err, detailInquiryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (h *Handler) listInquiries(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	items, err := h.inquiries.List(r.Context(), skip, limit)
	if err != nil {
		h.writeError(w, r, err, detailInquiryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

func (h *Handler) getInquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, detailInvalidID)
		return
	}
	in, err := h.inquiries.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, detailInquiryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, in)
}
