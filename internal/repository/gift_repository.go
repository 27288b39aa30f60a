package repository

import (
	"context"
	"database/sql"
	"fmt"

	"giftly-be/internal/entities"
)

// GiftRepository defines the interface for gift reservation operations
type GiftRepository interface {
	Reserve(ctx context.Context, giftID int64, message *string) (*entities.Gift, error)
}

type giftRepository struct {
	db *sql.DB
}

// NewGiftRepository creates a new gift repository
func NewGiftRepository(db *sql.DB) GiftRepository {
	return &giftRepository{db: db}
}

// Reserve marks a gift reserved with a single conditional update. The
// predicate is checked and set atomically by the storage engine, so of
// two concurrent attempts on the same gift exactly one succeeds.
// ErrGiftUnavailable covers both a missing gift and an already reserved
// one; callers cannot tell them apart.
func (r *giftRepository) Reserve(ctx context.Context, giftID int64, message *string) (*entities.Gift, error) {
	query := `
		UPDATE gifts
		SET is_reserved = true, reserve_message = $1
		WHERE id = $2 AND is_reserved = false
		RETURNING id, wishlist_id, name, price, priority, link, notes, image, is_reserved, reserve_message
	`

	var gift entities.Gift
	err := r.db.QueryRowContext(ctx, query, message, giftID).Scan(
		&gift.ID,
		&gift.WishlistID,
		&gift.Name,
		&gift.Price,
		&gift.Priority,
		&gift.Link,
		&gift.Notes,
		&gift.Image,
		&gift.IsReserved,
		&gift.ReserveMessage,
	)
	if err == sql.ErrNoRows {
		return nil, ErrGiftUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reserve gift: %w", err)
	}
	return &gift, nil
}
