// Package services はビジネスロジック層を提供します。
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid は署名不一致やペイロード不正のエラーです。
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired は有効期限切れのエラーです。
	ErrTokenExpired = errors.New("token expired")
)

// tokenTTL は発行するトークンの有効期間です。
const tokenTTL = 24 * time.Hour

// Claims はトークンに埋め込むクレームです。
// 有効期限(exp)と発行時刻(iat)は常に設定されます。
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService はJWTトークンの生成と検証を扱います。
// シークレットは起動時に設定から注入され、以後変更されません。
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService は新しいTokenServiceを作成します。
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: tokenTTL}
}

// Issue は指定ユーザーのJWTトークンを生成します。
func (s *TokenService) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return tokenString, nil
}

// Verify はJWTトークンを検証し、クレームを返します。
// 副作用はありません。期限切れはErrTokenExpired、それ以外の失敗は
// ErrTokenInvalidになります。
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
