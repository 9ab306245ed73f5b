package models

import "time"

// Order is a placed order. PaymentID is stored as given; no payment is processed.
type Order struct {
	ID        int64     `json:"order_id"`
	UserID    int64     `json:"user_id"`
	Date      time.Time `json:"date"`
	TotalCost int64     `json:"total_cost"`
	PaymentID string    `json:"payment_id,omitempty"`
	StatusID  int       `json:"status_id"`
}
