// Package models はデータベース構造体とリクエスト/レスポンスの型を定義します。
package models

import "time"

// User はユーザーのデータベース構造体を表します。
// JSONタグ: クライアントとの通信用
// bindingタグ: Ginでのリクエストバリデーション用
type User struct {
	ID           string    `json:"id,omitempty"` // UUID（作成時に採番）
	Name         string    `json:"name"`
	Email        string    `json:"email"` // 小文字に正規化して保存
	PasswordHash string    `json:"-"`     // JSONに出さない
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserRegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=3,max=100"` // 生パスワード
}

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"` // 生パスワード
}

type UserUpdateRequest struct {
	Name string `json:"name" binding:"required,min=3,max=100"`
}
