package entities

// Gift represents a single gift row belonging to a wishlist.
// IsReserved and ReserveMessage are only ever written by the
// reservation path, never by wishlist synchronization.
type Gift struct {
	ID             int64   `json:"id"`
	WishlistID     int64   `json:"wishlist_id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Priority       int     `json:"priority"`
	Link           *string `json:"link,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Image          *string `json:"image,omitempty"`
	IsReserved     bool    `json:"is_reserved"`
	ReserveMessage *string `json:"reserve_message,omitempty"`
}
