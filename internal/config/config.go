// Package config はアプリケーションの設定を環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定値を保持します。
// JWTSecret はここで一度だけ読み込み、TokenServiceに明示的に注入します。
type Config struct {
	Port       string // HTTPサーバーのポート
	DBUser     string
	DBPass     string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string // トークン署名用の共有シークレット（必須）
	CORSOrigin string // フロントエンドのオリジン
}

// ErrMissingJWTSecret はJWT_SECRETが未設定の場合のエラーです。
var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable not set")

// Load は.envと環境変数からConfigを構築します。
// .envが存在しない場合は環境変数のみを使用します。
func Load() (*Config, error) {
	// .envはローカル開発用。無くてもエラーにしない
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		DBUser:     os.Getenv("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "todo-api"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

// DSN はMySQL接続文字列 (DSN) を構築します。
// clientFoundRows=true により、RowsAffectedは変更された行数ではなく
// WHERE句にマッチした行数を返します（所有権チェックの判定に必要）。
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&clientFoundRows=true",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// getEnv は環境変数を取得し、未設定の場合はフォールバック値を返します。
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
