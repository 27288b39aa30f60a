package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"giftly-be/internal/cache"
	"giftly-be/internal/entities"
	"giftly-be/internal/repository"
)

// GiftService defines the interface for gift reservation logic
type GiftService interface {
	Reserve(ctx context.Context, giftID int64, message string) (*entities.Gift, error)
}

type giftService struct {
	giftRepo     repository.GiftRepository
	wishlistRepo repository.WishlistRepository
	cache        cache.Cache
}

// NewGiftService creates a new gift service
func NewGiftService(giftRepo repository.GiftRepository, wishlistRepo repository.WishlistRepository, cacheClient cache.Cache) GiftService {
	return &giftService{
		giftRepo:     giftRepo,
		wishlistRepo: wishlistRepo,
		cache:        cacheClient,
	}
}

// Reserve marks a gift as reserved exactly once. The message is
// optional; whitespace-only messages are stored as null.
func (s *giftService) Reserve(ctx context.Context, giftID int64, message string) (*entities.Gift, error) {
	if giftID <= 0 {
		return nil, fmt.Errorf("%w: gift id must be a positive integer", ErrInvalidInput)
	}

	var msg *string
	if trimmed := strings.TrimSpace(message); trimmed != "" {
		msg = &trimmed
	}

	gift, err := s.giftRepo.Reserve(ctx, giftID, msg)
	if err != nil {
		if errors.Is(err, repository.ErrGiftUnavailable) {
			return nil, ErrGiftUnavailable
		}
		logrus.WithFields(logrus.Fields{
			"gift_id": giftID,
			"error":   err.Error(),
		}).Error("gift reservation failed")
		return nil, fmt.Errorf("failed to reserve gift: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"gift_id":     gift.ID,
		"wishlist_id": gift.WishlistID,
	}).Info("gift reserved")

	// The public view caches reservation state, so drop it.
	if s.cache != nil {
		if token, err := s.wishlistRepo.GetShareToken(ctx, gift.WishlistID); err == nil {
			_ = s.cache.Delete(ctx, "wishlist:public:"+token)
		}
	}

	return gift, nil
}
