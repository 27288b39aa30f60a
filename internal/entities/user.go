package entities

import "time"

// User represents a user entity in the database
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // Don't expose the bcrypt hash in JSON
	CreatedAt time.Time `json:"created_at"`
}
