package services

import (
	"context"
	"errors"
	"strings"

	"github.com/errajput/todo-api/internal/models"
	"github.com/errajput/todo-api/internal/repositories"
)

// ErrInvalidCredentials はメールアドレスまたはパスワードが不正な場合のエラーです。
// どちらが間違っているかは呼び出し側に漏らしません。
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService はユーザー関連のビジネスロジックを扱います。
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService は新しいUserServiceを作成します。
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterUser はユーザーを登録します。
// メールアドレスは小文字に正規化して保存します。重複している場合は
// repositories.ErrDuplicateEmailを返します。
func (s *UserService) RegisterUser(ctx context.Context, req models.UserRegisterRequest) (*models.User, error) {
	hashedPassword, err := repositories.HashPassword(strings.TrimSpace(req.Password))
	if err != nil {
		return nil, err
	}

	newUser := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hashedPassword,
	}

	createdUser, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return nil, err
	}
	createdUser.PasswordHash = "" // レスポンスにハッシュを含めない
	return createdUser, nil
}

// AuthenticateUser はユーザーを認証し、成功したらユーザーを返します。
// ユーザーが存在しない場合もパスワード不一致の場合も同じエラーを返します。
func (s *UserService) AuthenticateUser(ctx context.Context, req models.UserLoginRequest) (*models.User, error) {
	foundUser, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 登録時と同じ正規化（前後の空白除去）をしてから照合する
	if err := repositories.VerifyPassword(foundUser.PasswordHash, strings.TrimSpace(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	foundUser.PasswordHash = ""
	return foundUser, nil
}

// GetProfile は指定IDのユーザーを取得します（パスワードハッシュは除く）。
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile はユーザーの名前を更新し、更新後のユーザーを返します。
// 名前以外のプロフィール項目はこの経路では変更できません。
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.UserUpdateRequest) (*models.User, error) {
	if err := s.userRepo.UpdateName(ctx, userID, strings.TrimSpace(req.Name)); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// normalizeEmail はメールアドレスを比較可能な形（前後の空白除去+小文字）に揃えます。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
