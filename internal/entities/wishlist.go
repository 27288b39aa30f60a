package entities

import "time"

// Wishlist represents a wishlist entity in the database
type Wishlist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	UserID      int64     `json:"user_id"`
	ShareToken  string    `json:"share_token"` // Opaque token granting public read access
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}
