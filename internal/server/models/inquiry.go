package models

import "time"

// Inquiry is a customer-service message.
type Inquiry struct {
	ID      int64     `json:"inquiry_id"`
	UserID  int64     `json:"user_id"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}
