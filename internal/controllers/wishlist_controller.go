package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"giftly-be/internal/middleware"
	"giftly-be/internal/models"
	"giftly-be/internal/service"
	"giftly-be/internal/storage"

	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlistService service.WishlistService
	favoriteService service.FavoriteService
	imageStore      *storage.ImageStore
}

func NewWishlistController(wishlistService service.WishlistService, favoriteService service.FavoriteService, imageStore *storage.ImageStore) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
		favoriteService: favoriteService,
		imageStore:      imageStore,
	}
}

// Create handles POST /wishlist - multipart form with the wishlist name,
// a JSON gift list and optional per-gift image files
func (wc *WishlistController) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	req, images, ok := wc.parseSyncForm(c)
	if !ok {
		return
	}

	response, err := wc.wishlistService.Create(c.Request.Context(), userID, req, images)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create wishlist",
		})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Update handles PUT /wishlist/:id - replaces the wishlist's desired
// state with the submitted one
func (wc *WishlistController) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	wishlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid wishlist id",
		})
		return
	}

	req, images, ok := wc.parseSyncForm(c)
	if !ok {
		return
	}

	if err := wc.wishlistService.Update(c.Request.Context(), userID, wishlistID, req, images); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update wishlist",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist updated successfully",
	})
}

// Delete handles DELETE /wishlist/:id
func (wc *WishlistController) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	wishlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Wishlist not found",
		})
		return
	}

	summary, err := wc.wishlistService.Delete(c.Request.Context(), userID, wishlistID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Wishlist not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListMine handles GET /wishlist/me - the caller's owned and favorited
// wishlists
func (wc *WishlistController) ListMine(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	response, err := wc.wishlistService.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list wishlists",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetPublic handles GET /wishlist/public/:token - no auth required, but
// a valid bearer token personalizes the favorite flag
func (wc *WishlistController) GetPublic(c *gin.Context) {
	token := c.Param("token")

	var viewerID *int64
	if id, ok := middleware.CurrentUserID(c); ok {
		viewerID = &id
	}

	view, err := wc.wishlistService.GetPublic(c.Request.Context(), token, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Wishlist not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddFavorite handles POST /wishlist/favorites
func (wc *WishlistController) AddFavorite(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	var req models.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := wc.favoriteService.Add(c.Request.Context(), userID, req.WishlistID); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyFavorited):
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Wishlist not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to add favorite",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Wishlist favorited successfully",
	})
}

// RemoveFavorite handles DELETE /wishlist/favorites/:id
func (wc *WishlistController) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	wishlistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Favorite not found",
		})
		return
	}

	if err := wc.favoriteService.Remove(c.Request.Context(), userID, wishlistID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Favorite not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove favorite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorite removed successfully",
	})
}

// parseSyncForm reads the multipart wishlist form: "name", "gifts" (a
// JSON array of gift entries) and files named gift_image_<i>, where i
// is the entry's position in the gifts array. On failure it writes the
// error response itself and returns ok=false.
func (wc *WishlistController) parseSyncForm(c *gin.Context) (*models.SyncWishlistRequest, map[int]string, bool) {
	req := &models.SyncWishlistRequest{
		Name: c.PostForm("name"),
	}

	giftsJSON := c.PostForm("gifts")
	if giftsJSON == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing gifts field",
		})
		return nil, nil, false
	}
	if err := json.Unmarshal([]byte(giftsJSON), &req.Gifts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid gifts field",
			"details": err.Error(),
		})
		return nil, nil, false
	}

	images := make(map[int]string)
	for i := range req.Gifts {
		file, err := c.FormFile(fmt.Sprintf("gift_image_%d", i))
		if err != nil {
			continue
		}
		path, err := wc.imageStore.Save(c, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to store uploaded image",
			})
			return nil, nil, false
		}
		images[i] = path
	}

	return req, images, true
}
