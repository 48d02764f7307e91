// Package repositories はデータベース操作を行うリポジトリを提供します。
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/errajput/todo-api/internal/models"

	"golang.org/x/crypto/bcrypt" // パスワードのハッシュ化用
)

var (
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrUserNotFound   = errors.New("user not found")
)

// UserRepository はusersテーブルの操作を行うための構造体です。
type UserRepository struct {
	DB  *sql.DB
	log *zap.SugaredLogger
}

// NewUserRepository は新しいUserRepositoryインスタンスを作成します。
func NewUserRepository(db *sql.DB, log *zap.SugaredLogger) *UserRepository {
	return &UserRepository{DB: db, log: log}
}

// HashPassword は与えられたパスワードをbcryptでハッシュ化します。
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// VerifyPassword はハッシュ化されたパスワードと平文のパスワードを比較します。
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

const insertUserQuery = "INSERT INTO users (id, name, email, password_hash) VALUES (?, ?, ?, ?)"

// Create は新しいユーザーをデータベースに挿入します。IDはここでUUIDを採番します。
func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	u.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, insertUserQuery, u.ID, u.Name, u.Email, u.PasswordHash)
	if err != nil {
		// MySQLの重複エントリーエラーコード1062をチェック
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, ErrDuplicateEmail
		}
		r.log.Errorw("failed to insert user", "error", err)
		return nil, fmt.Errorf("could not insert user: %w", err)
	}
	return u, nil
}

const selectUserByEmailQuery = "SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?"

// FindByEmail はメールアドレスでユーザーを検索します。
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, selectUserByEmailQuery, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		r.log.Errorw("failed to query user by email", "error", err)
		return nil, fmt.Errorf("could not query user: %w", err)
	}
	return &u, nil
}

const selectUserByIDQuery = "SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = ?"

// FindByID はIDでユーザーを検索します。
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, selectUserByIDQuery, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		r.log.Errorw("failed to query user by id", "error", err)
		return nil, fmt.Errorf("could not query user: %w", err)
	}
	return &u, nil
}

const updateUserNameQuery = "UPDATE users SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"

// UpdateName はユーザーの名前を更新します。
func (r *UserRepository) UpdateName(ctx context.Context, id, name string) error {
	res, err := r.DB.ExecContext(ctx, updateUserNameQuery, name, id)
	if err != nil {
		r.log.Errorw("failed to update user name", "error", err)
		return fmt.Errorf("could not update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
