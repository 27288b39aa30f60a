package models

import (
	"time"

	"giftly-be/internal/entities"
)

// CreateWishlistResponse represents the response after creating a wishlist
type CreateWishlistResponse struct {
	WishlistID int64  `json:"wishlist_id"`
	ShareToken string `json:"share_token"`
}

// PublicGift is the public projection of a gift, including its
// reservation state so visitors can see what is still available.
type PublicGift struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Priority       int     `json:"priority"`
	Link           *string `json:"link,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Image          *string `json:"image,omitempty"`
	IsReserved     bool    `json:"is_reserved"`
	ReserveMessage *string `json:"reserve_message,omitempty"`
}

// PublicWishlistResponse is the shareable read-only view of a wishlist.
// IsFavorite is always false for anonymous viewers.
type PublicWishlistResponse struct {
	WishlistID int64        `json:"wishlist_id"`
	Name       string       `json:"name"`
	OwnerName  string       `json:"owner_name"`
	CreatedAt  time.Time    `json:"created_at"`
	Gifts      []PublicGift `json:"gifts"`
	IsFavorite bool         `json:"is_favorite"`
}

// MyWishlistsResponse lists wishlists owned by the caller and,
// separately, wishlists the caller has favorited.
type MyWishlistsResponse struct {
	Owned     []*entities.Wishlist `json:"owned"`
	Favorited []*entities.Wishlist `json:"favorited"`
}

// DeleteWishlistResponse summarizes what a wishlist deletion removed
type DeleteWishlistResponse struct {
	WishlistID   int64 `json:"wishlist_id"`
	GiftsRemoved int64 `json:"gifts_removed"`
}
