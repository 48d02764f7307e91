package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/errajput/todo-api/internal/handlers"
	"github.com/errajput/todo-api/internal/routes"
	"github.com/errajput/todo-api/internal/services"
)

func setupProtectedRouter(tokenService *services.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", routes.AuthMiddleware(tokenService), func(c *gin.Context) {
		userID, _ := c.Get(handlers.ContextUserIDKey)
		email, _ := c.Get(handlers.ContextUserEmailKey)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": email})
	})
	return r
}

// expiredToken は有効期限切れのトークンをミドルウェアと同じシークレットで作ります。
func expiredToken(t *testing.T, secret string) string {
	claims := &services.Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	tokenService := services.NewTokenService("test-secret")
	r := setupProtectedRouter(tokenService)

	t.Run("missing header returns 401", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Contains(t, resp.Body.String(), "No token provided")
	})

	t.Run("non-bearer header returns 401", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abcdef")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Contains(t, resp.Body.String(), "Invalid token format")
	})

	t.Run("malformed token returns 403", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-real-token")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("expired token returns 403", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+expiredToken(t, "test-secret"))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Contains(t, resp.Body.String(), "Token expired")
	})

	t.Run("valid token binds user id into context", func(t *testing.T) {
		token, err := tokenService.Issue("user-1", "gopher@example.com")
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "user-1")
		assert.Contains(t, resp.Body.String(), "gopher@example.com")
	})
}
