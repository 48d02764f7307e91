// Package logger はzapによる構造化ロギングを提供します。
package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New は本番用のzapロガーを生成します。
func New() (*zap.Logger, error) {
	return zap.NewProduction()
}

// RequestLogger はリクエストごとにメソッド・パス・ステータス・所要時間を記録する
// Ginミドルウェアです。
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
