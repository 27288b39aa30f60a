package models

// GiftEntry is one element of the gift list a client submits when
// creating or updating a wishlist. An entry with a nil ID is a new
// gift; an entry carrying an ID updates the persisted gift in place.
// Entries arrive as a JSON array inside a multipart form, so they are
// validated in the service layer rather than by binding tags.
type GiftEntry struct {
	ID       *int64  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Priority int     `json:"priority"`
	Link     *string `json:"link,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Image    *string `json:"image,omitempty"` // Client-supplied image URL, overridden by an uploaded file
}

// SyncWishlistRequest carries the desired end state of a wishlist:
// its name and the full ordered gift list.
type SyncWishlistRequest struct {
	Name  string      `json:"name"`
	Gifts []GiftEntry `json:"gifts"`
}

// AddFavoriteRequest represents the request body for favoriting a wishlist
type AddFavoriteRequest struct {
	WishlistID int64 `json:"wishlist_id" binding:"required"`
}
