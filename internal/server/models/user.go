// Package models holds the persistent records of the shop.
package models

import "time"

// User is a registered identity. PasswordHash is never serialised.
type User struct {
	ID           int64     `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
