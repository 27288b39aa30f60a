package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// FavoriteRepository defines the interface for favorite database operations
type FavoriteRepository interface {
	Add(ctx context.Context, wishlistID, userID int64) error
	Remove(ctx context.Context, wishlistID, userID int64) error
	Exists(ctx context.Context, wishlistID, userID int64) (bool, error)
}

type favoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts a favorite pair. The composite primary key turns a
// second insert of the same pair into ErrDuplicate; a nonexistent
// wishlist or user surfaces as ErrForeignKey.
func (r *favoriteRepository) Add(ctx context.Context, wishlistID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (wishlist_id, user_id) VALUES ($1, $2)`,
		wishlistID, userID,
	)
	if err != nil {
		if cerr := constraintError(err); cerr != err {
			return cerr
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes a favorite pair, ErrNotFound when it never existed
func (r *favoriteRepository) Remove(ctx context.Context, wishlistID, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE wishlist_id = $1 AND user_id = $2`,
		wishlistID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether a user has favorited a wishlist
func (r *favoriteRepository) Exists(ctx context.Context, wishlistID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE wishlist_id = $1 AND user_id = $2)`,
		wishlistID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}
