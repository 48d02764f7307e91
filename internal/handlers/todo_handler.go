package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/errajput/todo-api/internal/models"
	"github.com/errajput/todo-api/internal/repositories"
	"github.com/errajput/todo-api/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// CreateTodoHandler は新しいTodoを作成します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Missing user ID"})
		return
	}

	var req models.TodoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	createdTodo, err := h.todoService.CreateTodo(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save todo to database"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Todo added successfully.", "data": createdTodo.ID})
}

// GetTodosHandler はTodoリストを表示順の昇順で取得します。
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Missing user ID"})
		return
	}

	todos, err := h.todoService.GetTodos(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}
	if todos == nil {
		todos = []*models.Todo{}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todos fetched successfully.", "data": todos})
}

// GetTodoByIDHandler は指定IDのTodoを取得します。
func (h *TodoHandler) GetTodoByIDHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Missing user ID"})
		return
	}

	todo, err := h.todoService.GetTodoByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo fetched successfully.", "data": todo})
}

// UpdateTodoHandler はTodoのタイトル・完了状態を部分更新します。
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Missing user ID"})
		return
	}

	var req models.TodoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	updatedTodo, err := h.todoService.UpdateTodo(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo updated successfully.", "data": updatedTodo})
}

// ReorderTodosHandler は (id, order) ペアの配列を受け取り表示順を上書きします。
// 所有者が一致しないIDはスキップされ、結果に報告されます。
func (h *TodoHandler) ReorderTodosHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Missing user ID"})
		return
	}

	var items []models.ReorderItem
	if err := c.ShouldBindJSON(&items); err != nil {
		validationErrorResponse(c, err)
		return
	}

	result, err := h.todoService.ReorderTodos(c.Request.Context(), userID, items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder todos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully.", "data": result})
}

// DeleteTodoHandler はTodoを削除します。
// 既に存在しないIDの削除は deletedCount=0 の成功として扱います（冪等）。
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Missing user ID"})
		return
	}

	deleted, err := h.todoService.DeleteTodo(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully.", "data": gin.H{"deletedCount": deleted}})
}
