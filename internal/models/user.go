package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64      `json:"id" db:"id"`                       // Primary key
	Username     string     `json:"username" db:"username"`           // Unique username
	PasswordHash string     `json:"-" db:"password_hash"`             // SHA-256 digest, base64-encoded
	ActiveToken  *string    `json:"-" db:"active_token"`              // Most recently issued token, nil after logout
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`       // Creation timestamp
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"` // Last successful login, nil before first login
}
