package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"giftly-be/internal/cache"
	"giftly-be/internal/entities"
	"giftly-be/internal/models"
	"giftly-be/internal/repository"
)

const publicViewTTL = 60 * time.Second

// WishlistService defines the interface for wishlist business logic.
// Create and Update take the full desired gift list; the server works
// out what to insert, overwrite and delete. Uploaded images are handed
// in as a mapping from gift-list index to resolved path, keeping the
// core independent of the upload middleware's representation.
type WishlistService interface {
	Create(ctx context.Context, ownerID int64, req *models.SyncWishlistRequest, images map[int]string) (*models.CreateWishlistResponse, error)
	Update(ctx context.Context, ownerID, wishlistID int64, req *models.SyncWishlistRequest, images map[int]string) error
	Delete(ctx context.Context, ownerID, wishlistID int64) (*models.DeleteWishlistResponse, error)
	ListMine(ctx context.Context, userID int64) (*models.MyWishlistsResponse, error)
	GetPublic(ctx context.Context, shareToken string, viewerID *int64) (*models.PublicWishlistResponse, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	favoriteRepo repository.FavoriteRepository
	cache        cache.Cache
}

// NewWishlistService creates a new wishlist service. cacheClient may be
// nil, in which case public views are always read from the database.
func NewWishlistService(wishlistRepo repository.WishlistRepository, favoriteRepo repository.FavoriteRepository, cacheClient cache.Cache) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		favoriteRepo: favoriteRepo,
		cache:        cacheClient,
	}
}

// Create persists a wishlist and its initial gifts in one transaction
// and returns the generated share token.
func (s *wishlistService) Create(ctx context.Context, ownerID int64, req *models.SyncWishlistRequest, images map[int]string) (*models.CreateWishlistResponse, error) {
	name, gifts, err := validateSync(req, images)
	if err != nil {
		return nil, err
	}

	shareToken := uuid.NewString()
	wishlist, err := s.wishlistRepo.CreateWithGifts(ctx, name, ownerID, shareToken, gifts)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": ownerID,
			"error":   err.Error(),
		}).Error("wishlist creation failed")
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     ownerID,
		"wishlist_id": wishlist.ID,
		"gifts":       len(gifts),
	}).Info("wishlist created")

	return &models.CreateWishlistResponse{
		WishlistID: wishlist.ID,
		ShareToken: wishlist.ShareToken,
	}, nil
}

// Update reconciles the persisted gift set against the submitted list.
// Missing and foreign wishlists are indistinguishable to the caller.
func (s *wishlistService) Update(ctx context.Context, ownerID, wishlistID int64, req *models.SyncWishlistRequest, images map[int]string) error {
	name, gifts, err := validateSync(req, images)
	if err != nil {
		return err
	}

	wishlist, err := s.wishlistRepo.FindByID(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("failed to load wishlist: %w", err)
	}
	if wishlist.UserID != ownerID {
		return ErrForbidden
	}

	if err := s.wishlistRepo.SyncGifts(ctx, wishlistID, name, gifts); err != nil {
		if errors.Is(err, repository.ErrUnknownGift) {
			return fmt.Errorf("%w: gift id does not belong to this wishlist", ErrInvalidInput)
		}
		logrus.WithFields(logrus.Fields{
			"user_id":     ownerID,
			"wishlist_id": wishlistID,
			"error":       err.Error(),
		}).Error("wishlist sync failed")
		return fmt.Errorf("failed to sync wishlist: %w", err)
	}

	s.invalidatePublicView(ctx, wishlist.ShareToken)
	return nil
}

// Delete removes an owned wishlist and everything hanging off it
func (s *wishlistService) Delete(ctx context.Context, ownerID, wishlistID int64) (*models.DeleteWishlistResponse, error) {
	wishlist, err := s.wishlistRepo.FindByID(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	giftsRemoved, err := s.wishlistRepo.Delete(ctx, wishlistID, ownerID)
	if err != nil {
		// Existing but not owned collapses into NotFound as well.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete wishlist: %w", err)
	}

	s.invalidatePublicView(ctx, wishlist.ShareToken)

	logrus.WithFields(logrus.Fields{
		"user_id":     ownerID,
		"wishlist_id": wishlistID,
		"gifts":       giftsRemoved,
	}).Info("wishlist deleted")

	return &models.DeleteWishlistResponse{
		WishlistID:   wishlistID,
		GiftsRemoved: giftsRemoved,
	}, nil
}

// ListMine returns the caller's own wishlists and favorited wishlists
// as two independent queries.
func (s *wishlistService) ListMine(ctx context.Context, userID int64) (*models.MyWishlistsResponse, error) {
	owned, err := s.wishlistRepo.GetOwned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned wishlists: %w", err)
	}

	favorited, err := s.wishlistRepo.GetFavorited(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorited wishlists: %w", err)
	}

	if owned == nil {
		owned = []*entities.Wishlist{}
	}
	if favorited == nil {
		favorited = []*entities.Wishlist{}
	}
	return &models.MyWishlistsResponse{Owned: owned, Favorited: favorited}, nil
}

// GetPublic builds the shareable view of a published wishlist. The
// viewer-independent part is cached; the per-viewer favorite flag is
// always read live.
func (s *wishlistService) GetPublic(ctx context.Context, shareToken string, viewerID *int64) (*models.PublicWishlistResponse, error) {
	view, err := s.publicView(ctx, shareToken)
	if err != nil {
		return nil, err
	}

	if viewerID != nil {
		isFavorite, err := s.favoriteRepo.Exists(ctx, view.WishlistID, *viewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check favorite: %w", err)
		}
		view.IsFavorite = isFavorite
	}
	return view, nil
}

func (s *wishlistService) publicView(ctx context.Context, shareToken string) (*models.PublicWishlistResponse, error) {
	cacheKey := "wishlist:public:" + shareToken

	if s.cache != nil {
		var cached models.PublicWishlistResponse
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			cached.IsFavorite = false
			return &cached, nil
		}
	}

	wishlist, ownerName, err := s.wishlistRepo.FindPublishedByToken(ctx, shareToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve share token: %w", err)
	}

	gifts, err := s.wishlistRepo.GetGifts(ctx, wishlist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load gifts: %w", err)
	}

	view := &models.PublicWishlistResponse{
		WishlistID: wishlist.ID,
		Name:       wishlist.Name,
		OwnerName:  ownerName,
		CreatedAt:  wishlist.CreatedAt,
		Gifts:      make([]models.PublicGift, 0, len(gifts)),
	}
	for _, g := range gifts {
		view.Gifts = append(view.Gifts, models.PublicGift{
			ID:             g.ID,
			Name:           g.Name,
			Price:          g.Price,
			Priority:       g.Priority,
			Link:           g.Link,
			Notes:          g.Notes,
			Image:          g.Image,
			IsReserved:     g.IsReserved,
			ReserveMessage: g.ReserveMessage,
		})
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, view, publicViewTTL)
	}
	return view, nil
}

func (s *wishlistService) invalidatePublicView(ctx context.Context, shareToken string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "wishlist:public:"+shareToken)
	}
}

// validateSync checks a submitted wishlist, trims its name and turns
// the entries into gift rows with their images resolved: an uploaded
// attachment at index i wins over a client-supplied URL, which wins
// over nothing.
func validateSync(req *models.SyncWishlistRequest, images map[int]string) (string, []entities.Gift, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", nil, fmt.Errorf("%w: wishlist name is required", ErrInvalidInput)
	}
	if len(req.Gifts) == 0 {
		return "", nil, fmt.Errorf("%w: at least one gift is required", ErrInvalidInput)
	}

	gifts := make([]entities.Gift, 0, len(req.Gifts))
	for i, entry := range req.Gifts {
		giftName := strings.TrimSpace(entry.Name)
		if giftName == "" {
			return "", nil, fmt.Errorf("%w: gift %d has no name", ErrInvalidInput, i)
		}
		if entry.Price < 0 {
			return "", nil, fmt.Errorf("%w: gift %d has a negative price", ErrInvalidInput, i)
		}

		gift := entities.Gift{
			Name:     giftName,
			Price:    entry.Price,
			Priority: entry.Priority,
			Link:     entry.Link,
			Notes:    entry.Notes,
			Image:    entry.Image,
		}
		if entry.ID != nil {
			gift.ID = *entry.ID
		}
		if path, ok := images[i]; ok {
			p := path
			gift.Image = &p
		}
		gifts = append(gifts, gift)
	}
	return name, gifts, nil
}
