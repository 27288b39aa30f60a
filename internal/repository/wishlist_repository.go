package repository

import (
	"context"
	"database/sql"
	"fmt"

	"giftly-be/internal/entities"

	"github.com/lib/pq"
)

// WishlistRepository defines the interface for wishlist database operations.
// CreateWithGifts and SyncGifts each run inside a single transaction so a
// wishlist and its gift set are only ever visible as a whole.
type WishlistRepository interface {
	CreateWithGifts(ctx context.Context, name string, userID int64, shareToken string, gifts []entities.Gift) (*entities.Wishlist, error)
	FindByID(ctx context.Context, id int64) (*entities.Wishlist, error)
	FindPublishedByToken(ctx context.Context, token string) (*entities.Wishlist, string, error)
	SyncGifts(ctx context.Context, wishlistID int64, name string, gifts []entities.Gift) error
	Delete(ctx context.Context, id, userID int64) (int64, error)
	GetGifts(ctx context.Context, wishlistID int64) ([]entities.Gift, error)
	GetOwned(ctx context.Context, userID int64) ([]*entities.Wishlist, error)
	GetFavorited(ctx context.Context, userID int64) ([]*entities.Wishlist, error)
	GetShareToken(ctx context.Context, wishlistID int64) (string, error)
}

type wishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *sql.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// CreateWithGifts inserts a wishlist and all of its gifts atomically.
// Any failed insert rolls the whole operation back.
func (r *wishlistRepository) CreateWithGifts(ctx context.Context, name string, userID int64, shareToken string, gifts []entities.Gift) (*entities.Wishlist, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO wishlists (name, user_id, share_token, is_published)
		VALUES ($1, $2, $3, true)
		RETURNING id, name, user_id, share_token, is_published, created_at
	`

	var wishlist entities.Wishlist
	err = tx.QueryRowContext(ctx, query, name, userID, shareToken).Scan(
		&wishlist.ID,
		&wishlist.Name,
		&wishlist.UserID,
		&wishlist.ShareToken,
		&wishlist.IsPublished,
		&wishlist.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", constraintError(err))
	}

	for _, gift := range gifts {
		if err := insertGift(ctx, tx, wishlist.ID, gift); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit wishlist creation: %w", err)
	}
	return &wishlist, nil
}

// SyncGifts reconciles the persisted gift set of a wishlist against the
// submitted list inside one transaction: the wishlist name is updated,
// gifts omitted from the submission are deleted, gifts carrying an id
// are updated in place (reservation fields untouched), and gifts
// without an id are inserted. Concurrent syncs of the same wishlist
// serialize on row locks; there is no version check, so the last commit
// wins.
func (r *wishlistRepository) SyncGifts(ctx context.Context, wishlistID int64, name string, gifts []entities.Gift) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE wishlists SET name = $1 WHERE id = $2`, name, wishlistID); err != nil {
		return fmt.Errorf("failed to update wishlist: %w", err)
	}

	existing, err := giftIDs(ctx, tx, wishlistID)
	if err != nil {
		return err
	}

	if stale := staleGiftIDs(existing, gifts); len(stale) > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM gifts WHERE wishlist_id = $1 AND id = ANY($2)`,
			wishlistID, pq.Array(stale),
		); err != nil {
			return fmt.Errorf("failed to delete stale gifts: %w", err)
		}
	}

	for _, gift := range gifts {
		if gift.ID > 0 {
			err = updateGift(ctx, tx, wishlistID, gift)
		} else {
			err = insertGift(ctx, tx, wishlistID, gift)
		}
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wishlist sync: %w", err)
	}
	return nil
}

func insertGift(ctx context.Context, tx *sql.Tx, wishlistID int64, gift entities.Gift) error {
	query := `
		INSERT INTO gifts (wishlist_id, name, price, priority, link, notes, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.ExecContext(ctx, query,
		wishlistID,
		gift.Name,
		gift.Price,
		gift.Priority,
		gift.Link,
		gift.Notes,
		gift.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to insert gift: %w", constraintError(err))
	}
	return nil
}

// updateGift overwrites the mutable fields of a kept gift. The guard on
// wishlist_id means a submitted id belonging to another wishlist (or to
// nothing) affects zero rows and aborts the sync.
func updateGift(ctx context.Context, tx *sql.Tx, wishlistID int64, gift entities.Gift) error {
	query := `
		UPDATE gifts
		SET name = $1, price = $2, priority = $3, link = $4, notes = $5, image = $6
		WHERE id = $7 AND wishlist_id = $8
	`
	result, err := tx.ExecContext(ctx, query,
		gift.Name,
		gift.Price,
		gift.Priority,
		gift.Link,
		gift.Notes,
		gift.Image,
		gift.ID,
		wishlistID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gift: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrUnknownGift
	}
	return nil
}

func giftIDs(ctx context.Context, tx *sql.Tx, wishlistID int64) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM gifts WHERE wishlist_id = $1`, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gift ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan gift id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindByID finds a wishlist by its id regardless of published state
func (r *wishlistRepository) FindByID(ctx context.Context, id int64) (*entities.Wishlist, error) {
	query := `
		SELECT id, name, user_id, share_token, is_published, created_at
		FROM wishlists
		WHERE id = $1
	`

	var wishlist entities.Wishlist
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&wishlist.ID,
		&wishlist.Name,
		&wishlist.UserID,
		&wishlist.ShareToken,
		&wishlist.IsPublished,
		&wishlist.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist: %w", err)
	}
	return &wishlist, nil
}

// FindPublishedByToken resolves a share token to its wishlist and the
// owner's display name. Unpublished wishlists are invisible here.
func (r *wishlistRepository) FindPublishedByToken(ctx context.Context, token string) (*entities.Wishlist, string, error) {
	query := `
		SELECT w.id, w.name, w.user_id, w.share_token, w.is_published, w.created_at, u.name
		FROM wishlists w
		JOIN users u ON u.id = w.user_id
		WHERE w.share_token = $1 AND w.is_published = true
	`

	var wishlist entities.Wishlist
	var ownerName string
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&wishlist.ID,
		&wishlist.Name,
		&wishlist.UserID,
		&wishlist.ShareToken,
		&wishlist.IsPublished,
		&wishlist.CreatedAt,
		&ownerName,
	)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to find wishlist by token: %w", err)
	}
	return &wishlist, ownerName, nil
}

// Delete removes a wishlist owned by userID and returns how many gifts
// went with it. Gifts and favorites cascade at the schema level.
func (r *wishlistRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var giftCount int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM gifts WHERE wishlist_id = $1`, id,
	).Scan(&giftCount)
	if err != nil {
		return 0, fmt.Errorf("failed to count gifts: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM wishlists WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete wishlist: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return 0, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit wishlist deletion: %w", err)
	}
	return giftCount, nil
}

// GetGifts returns all gifts of a wishlist ordered by priority
func (r *wishlistRepository) GetGifts(ctx context.Context, wishlistID int64) ([]entities.Gift, error) {
	query := `
		SELECT id, wishlist_id, name, price, priority, link, notes, image, is_reserved, reserve_message
		FROM gifts
		WHERE wishlist_id = $1
		ORDER BY priority ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gifts: %w", err)
	}
	defer rows.Close()

	var gifts []entities.Gift
	for rows.Next() {
		var gift entities.Gift
		err := rows.Scan(
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
		if err != nil {
			return nil, fmt.Errorf("failed to scan gift: %w", err)
		}
		gifts = append(gifts, gift)
	}
	return gifts, rows.Err()
}

// GetOwned returns all wishlists owned by a user
func (r *wishlistRepository) GetOwned(ctx context.Context, userID int64) ([]*entities.Wishlist, error) {
	query := `
		SELECT id, name, user_id, share_token, is_published, created_at
		FROM wishlists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.queryWishlists(ctx, query, userID)
}

// GetFavorited returns all wishlists a user has favorited
func (r *wishlistRepository) GetFavorited(ctx context.Context, userID int64) ([]*entities.Wishlist, error) {
	query := `
		SELECT w.id, w.name, w.user_id, w.share_token, w.is_published, w.created_at
		FROM wishlists w
		JOIN favorites f ON f.wishlist_id = w.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`
	return r.queryWishlists(ctx, query, userID)
}

// GetShareToken returns the share token of a wishlist
func (r *wishlistRepository) GetShareToken(ctx context.Context, wishlistID int64) (string, error) {
	var token string
	err := r.db.QueryRowContext(ctx,
		`SELECT share_token FROM wishlists WHERE id = $1`, wishlistID,
	).Scan(&token)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get share token: %w", err)
	}
	return token, nil
}

func (r *wishlistRepository) queryWishlists(ctx context.Context, query string, args ...interface{}) ([]*entities.Wishlist, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlists: %w", err)
	}
	defer rows.Close()

	var wishlists []*entities.Wishlist
	for rows.Next() {
		var w entities.Wishlist
		err := rows.Scan(&w.ID, &w.Name, &w.UserID, &w.ShareToken, &w.IsPublished, &w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		wishlists = append(wishlists, &w)
	}
	return wishlists, rows.Err()
}
