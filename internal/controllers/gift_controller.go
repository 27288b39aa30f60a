package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"giftly-be/internal/models"
	"giftly-be/internal/service"

	"github.com/gin-gonic/gin"
)

type GiftController struct {
	giftService service.GiftService
}

func NewGiftController(giftService service.GiftService) *GiftController {
	return &GiftController{
		giftService: giftService,
	}
}

// Reserve handles POST/PATCH /gift/:id/reserve - anonymous, the body is
// optional and may carry a message for the wishlist owner
func (gc *GiftController) Reserve(c *gin.Context) {
	giftID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || giftID <= 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Gift not found",
		})
		return
	}

	// Absent or empty bodies are fine, the message is optional.
	var req models.ReserveGiftRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request body",
				"details": err.Error(),
			})
			return
		}
	}

	gift, err := gc.giftService.Reserve(c.Request.Context(), giftID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrGiftUnavailable) {
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reserve gift",
		})
		return
	}

	c.JSON(http.StatusOK, gift)
}
