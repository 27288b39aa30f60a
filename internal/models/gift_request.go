package models

// ReserveGiftRequest represents the optional request body for reserving
// a gift. The body may be absent entirely.
type ReserveGiftRequest struct {
	Message string `json:"message"`
}
