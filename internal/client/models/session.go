package models

import "time"

// Session is the local credential record created by a successful login.
// PasswordHash holds an Argon2id PHC string, never the plaintext password.
type Session struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Token        string    `json:"token"`
	CreatedAt    time.Time `json:"created_at"`
}
