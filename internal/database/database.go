// Package database はMySQL接続の初期化とスキーマ作成を行います。
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/errajput/todo-api/internal/config"
)

// InitDB はデータベース接続を初期化します。
func InitDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Bootstrap はusers/todosテーブルを作成します（存在しない場合のみ）。
// todosは(user_id, display_order)にインデックスを張り、
// 所有者ごとの並び順の読み出しを高速化します。
func Bootstrap(db *sql.DB) error {
	createUserTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`
	if _, err := db.Exec(createUserTableSQL); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	createTodoTableSQL := `
		CREATE TABLE IF NOT EXISTS todos (
			id CHAR(36) PRIMARY KEY,
			user_id CHAR(36) NOT NULL,
			title VARCHAR(100) NOT NULL,
			is_done BOOLEAN NOT NULL DEFAULT FALSE,
			display_order INT NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_user_order (user_id, display_order),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		);`
	if _, err := db.Exec(createTodoTableSQL); err != nil {
		return fmt.Errorf("failed to create todos table: %w", err)
	}

	return nil
}
