package main

import (
	"go.uber.org/zap"

	"github.com/errajput/todo-api/internal/config"
	"github.com/errajput/todo-api/internal/database"
	"github.com/errajput/todo-api/internal/logger"
	"github.com/errajput/todo-api/internal/routes"
)

func main() {
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// 設定の読み込み（.env + 環境変数）
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	// データベース接続とスキーマ作成
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatal("failed to init database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Bootstrap(db); err != nil {
		log.Fatal("failed to bootstrap schema", zap.Error(err))
	}
	log.Info("successfully connected to MySQL database")

	// ルーティングの設定
	r := routes.SetupRouter(db, cfg, log)

	// サーバー起動
	log.Info("server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
