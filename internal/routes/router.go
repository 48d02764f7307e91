// Package routesはroutingを行います。
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/errajput/todo-api/internal/config"
	"github.com/errajput/todo-api/internal/handlers"
	"github.com/errajput/todo-api/internal/logger"
	"github.com/errajput/todo-api/internal/repositories"
	"github.com/errajput/todo-api/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(db *sql.DB, cfg *config.Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(logger.RequestLogger(log))
	r.Use(gin.Recovery())

	// CORS対策
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	sugar := log.Sugar()

	// リポジトリ
	userRepo := repositories.NewUserRepository(db, sugar)
	todoRepo := repositories.NewTodoRepository(db, sugar)

	// サービス
	userService := services.NewUserService(userRepo)
	todoService := services.NewTodoService(todoRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret)

	// ハンドラー
	userHandler := handlers.NewUserHandler(userService, tokenService)
	todoHandler := handlers.NewTodoHandler(todoService)

	// 死活監視用
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Ok")
	})

	// 認証不要のルート
	auth := r.Group("/auth")
	{
		auth.POST("/register", userHandler.RegisterHandler)
		auth.POST("/login", userHandler.LoginHandler)
	}

	// Bearerトークン必須のルート
	user := r.Group("/user")
	user.Use(AuthMiddleware(tokenService))
	{
		user.GET("/profile", userHandler.ProfileHandler)
		user.PATCH("/profile", userHandler.UpdateProfileHandler)
	}

	todos := r.Group("/todos")
	todos.Use(AuthMiddleware(tokenService))
	{
		todos.GET("", todoHandler.GetTodosHandler)
		todos.POST("", todoHandler.CreateTodoHandler)
		todos.PUT("/reorder", todoHandler.ReorderTodosHandler)
		todos.GET("/:id", todoHandler.GetTodoByIDHandler)
		todos.PATCH("/:id", todoHandler.UpdateTodoHandler)
		todos.DELETE("/:id", todoHandler.DeleteTodoHandler)
	}

	return r
}
