package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/errajput/todo-api/internal/handlers"
	"github.com/errajput/todo-api/internal/services"
)

// AuthMiddleware はBearerトークンを検証し、ユーザーIDをコンテキストに設定する
// ミドルウェアです。失敗した場合は後続のハンドラーを実行しません。
//   - ヘッダー欠落・形式不正   → 401
//   - 署名不正・期限切れ       → 403
func AuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			c.Abort()
			return
		}

		// "Bearer <token>" 形式のみ受け付ける
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format"})
			c.Abort()
			return
		}

		claims, err := tokenService.Verify(tokenString)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				c.JSON(http.StatusForbidden, gin.H{"message": "Token expired, please login again."})
			} else {
				c.JSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token"})
			}
			c.Abort()
			return
		}

		c.Set(handlers.ContextUserIDKey, claims.UserID)
		c.Set(handlers.ContextUserEmailKey, claims.Email)
		c.Next()
	}
}
