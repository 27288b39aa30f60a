package entities

import "time"

// Favorite marks a wishlist as bookmarked by a user. The pair
// (WishlistID, UserID) is the primary key, so a user can favorite
// a wishlist at most once.
type Favorite struct {
	WishlistID int64     `json:"wishlist_id"`
	UserID     int64     `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
