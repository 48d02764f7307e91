package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/errajput/todo-api/internal/models"
)

// ErrTodoNotFound はTODOが見つからない場合のエラーです。
// 他人のTODOへのアクセスもこのエラーになります（存在の有無を漏らさないため）。
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository はtodosテーブルの操作を行うための構造体です。
// すべての読み書きは所有者(user_id)でスコープされます。
type TodoRepository struct {
	DB  *sql.DB
	log *zap.SugaredLogger
}

// NewTodoRepository は新しいTodoRepositoryインスタンスを作成します。
func NewTodoRepository(db *sql.DB, log *zap.SugaredLogger) *TodoRepository {
	return &TodoRepository{DB: db, log: log}
}

// insertTodoQuery は表示順の採番と挿入を1文で行います。
// 同一所有者の最大display_order+1（todoが無ければ0）をMySQL側で計算するため、
// 「最大値を読んでから書く」競合が発生しません。
const insertTodoQuery = `INSERT INTO todos (id, user_id, title, is_done, display_order)
		SELECT ?, ?, ?, ?, COALESCE(MAX(display_order) + 1, 0) FROM todos WHERE user_id = ?`

// Create は新しいTodoを挿入し、採番された表示順込みで返します。
func (r *TodoRepository) Create(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	t.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, insertTodoQuery, t.ID, t.UserID, t.Title, t.IsDone, t.UserID)
	if err != nil {
		r.log.Errorw("failed to insert todo", "error", err)
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}

	// DB側で決まったdisplay_orderとタイムスタンプを読み戻す
	return r.FindByID(ctx, t.UserID, t.ID)
}

const selectTodosByUserQuery = `SELECT id, user_id, title, is_done, display_order, created_at, updated_at
		FROM todos WHERE user_id = ? ORDER BY display_order ASC, created_at ASC`

// FindByUser は所有者のTodoを表示順の昇順で取得します。
// 表示順が同値の場合は作成日時で安定的に並べます。
func (r *TodoRepository) FindByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	rows, err := r.DB.QueryContext(ctx, selectTodosByUserQuery, userID)
	if err != nil {
		r.log.Errorw("failed to query todos", "error", err)
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		var t models.Todo
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.IsDone, &t.Order, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			r.log.Errorw("failed to scan todo", "error", err)
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

const selectTodoByIDQuery = `SELECT id, user_id, title, is_done, display_order, created_at, updated_at
		FROM todos WHERE id = ? AND user_id = ?`

// FindByID は指定IDのTodoを取得します。所有者が一致しない場合はErrTodoNotFoundです。
func (r *TodoRepository) FindByID(ctx context.Context, userID, id string) (*models.Todo, error) {
	var t models.Todo
	err := r.DB.QueryRowContext(ctx, selectTodoByIDQuery, id, userID).
		Scan(&t.ID, &t.UserID, &t.Title, &t.IsDone, &t.Order, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		r.log.Errorw("failed to query todo by id", "error", err)
		return nil, fmt.Errorf("could not query todo: %w", err)
	}

	return &t, nil
}

const updateTodoQuery = "UPDATE todos SET title = ?, is_done = ? WHERE id = ? AND user_id = ?"

// Update は指定IDのTodoのタイトル・完了状態を更新します。
// 表示順はこの経路では変更されません。
func (r *TodoRepository) Update(ctx context.Context, userID, id string, title string, isDone bool) (*models.Todo, error) {
	result, err := r.DB.ExecContext(ctx, updateTodoQuery, title, isDone, id, userID)
	if err != nil {
		r.log.Errorw("failed to update todo", "error", err)
		return nil, fmt.Errorf("could not update todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrTodoNotFound
	}

	// 更新されたTodoを取得して返す
	return r.FindByID(ctx, userID, id)
}

const updateTodoOrderQuery = "UPDATE todos SET display_order = ? WHERE id = ? AND user_id = ?"

// UpdateOrder は指定IDのTodoの表示順を上書きします。
// 所有者が一致しない・存在しない場合はfalseを返します（エラーにはしません）。
func (r *TodoRepository) UpdateOrder(ctx context.Context, userID, id string, order int) (bool, error) {
	result, err := r.DB.ExecContext(ctx, updateTodoOrderQuery, order, id, userID)
	if err != nil {
		r.log.Errorw("failed to update todo order", "error", err)
		return false, fmt.Errorf("could not update todo order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

const deleteTodoQuery = "DELETE FROM todos WHERE id = ? AND user_id = ?"

// Delete は指定IDのTodoを削除し、削除された行数を返します。
// 対象が無い場合は0を返します（2回目の削除はエラーではありません）。
func (r *TodoRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, deleteTodoQuery, id, userID)
	if err != nil {
		r.log.Errorw("failed to delete todo", "error", err)
		return 0, fmt.Errorf("could not delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get rows affected: %w", err)
	}

	return rowsAffected, nil
}
