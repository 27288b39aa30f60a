package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"giftly-be/internal/entities"
	"giftly-be/internal/service"

	"github.com/gin-gonic/gin"
)

// stubGiftService returns a canned result per gift id.
type stubGiftService struct {
	gifts       map[int64]*entities.Gift
	lastMessage string
}

func (s *stubGiftService) Reserve(_ context.Context, giftID int64, message string) (*entities.Gift, error) {
	s.lastMessage = message
	if gift, ok := s.gifts[giftID]; ok {
		return gift, nil
	}
	return nil, service.ErrGiftUnavailable
}

func newGiftTestRouter(stub *stubGiftService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewGiftController(stub)
	router.POST("/gift/:id/reserve", controller.Reserve)
	router.PATCH("/gift/:id/reserve", controller.Reserve)
	return router
}

func TestReserveStatusMapping(t *testing.T) {
	stub := &stubGiftService{gifts: map[int64]*entities.Gift{
		5: {ID: 5, WishlistID: 1, Name: "Book", IsReserved: true},
	}}
	router := newGiftTestRouter(stub)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{"success", "/gift/5/reserve", `{"message":"got it!"}`, http.StatusOK},
		{"success without body", "/gift/5/reserve", "", http.StatusOK},
		{"unavailable", "/gift/6/reserve", "", http.StatusConflict},
		{"non-numeric id", "/gift/abc/reserve", "", http.StatusNotFound},
		{"zero id", "/gift/0/reserve", "", http.StatusNotFound},
		{"malformed body", "/gift/5/reserve", `{"message":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(http.MethodPost, tt.path, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestReservePassesMessageThrough(t *testing.T) {
	stub := &stubGiftService{gifts: map[int64]*entities.Gift{
		5: {ID: 5, WishlistID: 1, Name: "Book", IsReserved: true},
	}}
	router := newGiftTestRouter(stub)

	req := httptest.NewRequest(http.MethodPatch, "/gift/5/reserve", strings.NewReader(`{"message":"from grandma"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if stub.lastMessage != "from grandma" {
		t.Errorf("message = %q, want %q", stub.lastMessage, "from grandma")
	}
}
