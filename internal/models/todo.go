package models

import (
	"time"
)

// Todo はタスクのデータベース構造体を表します。
// Orderは所有者ごとの表示順（display_orderカラム）。所有者(UserID)は作成時に
// 確定し、以後変更されません。
type Todo struct {
	ID        string    `json:"id,omitempty"`         // UUID（主キー）
	UserID    string    `json:"user_id"`              // 所有者のユーザーID（必須）
	Title     string    `json:"title"`                // タスクのタイトル
	IsDone    bool      `json:"isDone"`               // 完了状態
	Order     int       `json:"order"`                // 表示順
	CreatedAt time.Time `json:"created_at"`           // 作成日時
	UpdatedAt time.Time `json:"updated_at,omitempty"` // 更新日時
}

type TodoCreateRequest struct {
	Title  string `json:"title" binding:"required,min=3,max=100"`
	IsDone bool   `json:"isDone"`
}

// TodoUpdateRequest は部分更新用のリクエストです。
// nilのフィールドは変更しません。orderはこの経路では変更できません。
type TodoUpdateRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=3,max=100"`
	IsDone *bool   `json:"isDone"`
}

// ReorderItem は並び替えの1ペア (todoId, newOrder) を表します。
type ReorderItem struct {
	ID    string `json:"id" binding:"required"`
	Order int    `json:"order" binding:"min=0"`
}

// ReorderResult は並び替えバッチの適用結果を表します。
// Skippedには所有者が一致しない・存在しないIDが入ります。
type ReorderResult struct {
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped,omitempty"`
}
