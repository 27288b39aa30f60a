package service

import (
	"context"
	"errors"
	"fmt"

	"giftly-be/internal/repository"
)

// FavoriteService defines the interface for favorite business logic
type FavoriteService interface {
	Add(ctx context.Context, userID, wishlistID int64) error
	Remove(ctx context.Context, userID, wishlistID int64) error
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(favoriteRepo repository.FavoriteRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo}
}

// Add bookmarks a wishlist for a user. Favoriting twice is an expected
// conflict, not a crash; a nonexistent wishlist is NotFound.
func (s *favoriteService) Add(ctx context.Context, userID, wishlistID int64) error {
	if err := s.favoriteRepo.Add(ctx, wishlistID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return ErrAlreadyFavorited
		case errors.Is(err, repository.ErrForeignKey):
			return ErrNotFound
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes a user's bookmark of a wishlist
func (s *favoriteService) Remove(ctx context.Context, userID, wishlistID int64) error {
	if err := s.favoriteRepo.Remove(ctx, wishlistID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
