package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the caller as described by a verified bearer token.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
