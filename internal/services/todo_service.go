package services

import (
	"context"
	"strings"

	"github.com/errajput/todo-api/internal/models"
	"github.com/errajput/todo-api/internal/repositories"
)

// TodoService はTodo関連のビジネスロジックを扱います。
// すべての操作は呼び出し元の所有者IDでスコープされます。
type TodoService struct {
	todoRepo *repositories.TodoRepository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo *repositories.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// CreateTodo は新しいTodoを作成します。
// 表示順は同一所有者の最大値+1（最初のTodoは0）が自動で割り当てられます。
func (s *TodoService) CreateTodo(ctx context.Context, ownerID string, req models.TodoCreateRequest) (*models.Todo, error) {
	todo := &models.Todo{
		UserID: ownerID,
		Title:  strings.TrimSpace(req.Title),
		IsDone: req.IsDone,
	}
	return s.todoRepo.Create(ctx, todo)
}

// GetTodos は所有者のTodoを表示順の昇順で取得します。
func (s *TodoService) GetTodos(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	return s.todoRepo.FindByUser(ctx, ownerID)
}

// GetTodoByID は指定IDのTodoを取得します。
// 他人のTodoはErrTodoNotFoundになります（Forbiddenにはしません）。
func (s *TodoService) GetTodoByID(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	return s.todoRepo.FindByID(ctx, ownerID, id)
}

// UpdateTodo はTodoのタイトル・完了状態を部分更新します。
// nilのフィールドは既存値を保持します。表示順はここでは変更できません。
func (s *TodoService) UpdateTodo(ctx context.Context, ownerID, id string, req models.TodoUpdateRequest) (*models.Todo, error) {
	existing, err := s.todoRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	title := existing.Title
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
	}
	isDone := existing.IsDone
	if req.IsDone != nil {
		isDone = *req.IsDone
	}

	return s.todoRepo.Update(ctx, ownerID, id, title, isDone)
}

// ReorderTodos は (todoId, newOrder) のペア列を配列順に適用します。
// 各ペアは独立に適用され、所有者が一致しないIDはスキップして続行します。
// クライアントが指定した表示順はそのまま保存されます（重複も拒否しません）。
func (s *TodoService) ReorderTodos(ctx context.Context, ownerID string, items []models.ReorderItem) (*models.ReorderResult, error) {
	result := &models.ReorderResult{}
	for _, item := range items {
		ok, err := s.todoRepo.UpdateOrder(ctx, ownerID, item.ID, item.Order)
		if err != nil {
			return nil, err
		}
		if ok {
			result.Updated++
		} else {
			result.Skipped = append(result.Skipped, item.ID)
		}
	}
	return result, nil
}

// DeleteTodo はTodoを削除し、削除された行数を返します。
// 既に削除済みの場合は0を返します（冪等）。
func (s *TodoService) DeleteTodo(ctx context.Context, ownerID, id string) (int64, error) {
	return s.todoRepo.Delete(ctx, ownerID, id)
}
