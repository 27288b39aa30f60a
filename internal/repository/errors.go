package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Storage-level outcomes the service layer maps onto domain errors.
var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on a unique constraint violation.
	ErrDuplicate = errors.New("duplicate row")
	// ErrForeignKey is returned when a referenced row does not exist.
	ErrForeignKey = errors.New("referenced row does not exist")
	// ErrGiftUnavailable is returned when a conditional reservation
	// matches no row: the gift does not exist or is already reserved.
	ErrGiftUnavailable = errors.New("gift unavailable")
	// ErrUnknownGift is returned when a submitted gift id does not
	// belong to the wishlist being synchronized.
	ErrUnknownGift = errors.New("gift does not belong to wishlist")
)

// Postgres error codes for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// constraintError converts Postgres constraint violations into the
// package sentinels and leaves any other error untouched.
func constraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrForeignKey
		}
	}
	return err
}
