package service

import "errors"

// Domain errors surfaced to controllers, which map them to HTTP
// statuses with errors.Is. Anything not in this list is an internal
// failure: logged in full, reported generically.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("not allowed to modify this wishlist")
	ErrNotFound           = errors.New("not found")
	ErrGiftUnavailable    = errors.New("gift already reserved or does not exist")
	ErrAlreadyFavorited   = errors.New("wishlist already favorited")
)
