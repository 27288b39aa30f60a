package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"giftly-be/internal/jwt"

	"github.com/gin-gonic/gin"
)

func authTestRouter(t *testing.T, optional bool) (*gin.Engine, *jwt.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	router := gin.New()

	handler := func(c *gin.Context) {
		if id, ok := CurrentUserID(c); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	}

	if optional {
		router.GET("/", OptionalAuthMiddleware(jwtService), handler)
	} else {
		router.GET("/", AuthMiddleware(jwtService), handler)
	}
	return router, jwtService
}

func TestAuthMiddleware(t *testing.T) {
	router, jwtService := authTestRouter(t, false)

	validToken, err := jwtService.GenerateToken(42, "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	expiredToken, err := jwt.NewJWTService("test-secret", -time.Minute).GenerateToken(42, "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"malformed token", "Bearer not-a-token", http.StatusUnauthorized},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"valid token", "Bearer " + validToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestOptionalAuthMiddlewareDegradesToAnonymous(t *testing.T) {
	router, jwtService := authTestRouter(t, true)

	validToken, err := jwtService.GenerateToken(42, "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantBody   string
	}{
		{"no header", "", `{"user_id":null}`},
		{"garbage token", "Bearer nope", `{"user_id":null}`},
		{"valid token", "Bearer " + validToken, `{"user_id":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if w.Body.String() != tt.wantBody {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.wantBody)
			}
		})
	}
}
