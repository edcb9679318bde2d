package models

import "time"

// TaskDB represents a task record in the database
type TaskDB struct {
	ID          int64      `json:"id" db:"id"`                   // Primary key
	OwnerID     int64      `json:"-" db:"owner_id"`              // Foreign key to users.id, cascade on delete
	Title       string     `json:"title" db:"title"`             // 1-200 chars
	Description *string    `json:"description" db:"description"` // Optional, up to 1000 chars
	Completed   bool       `json:"completed" db:"completed"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt   *time.Time `json:"updated_at" db:"updated_at"` // Set on every mutation
}
