package services

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/errajput/todo-api/internal/models"
	"github.com/errajput/todo-api/internal/repositories"
)

func setupUserService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := repositories.NewUserRepository(db, zap.NewNop().Sugar())
	return NewUserService(repo), mock
}

// stringCaptor はINSERTに渡された値を記録するsqlmockの引数マッチャーです。
type stringCaptor struct {
	value string
}

func (c *stringCaptor) Match(v driver.Value) bool {
	s, ok := v.(string)
	if ok {
		c.value = s
	}
	return ok
}

func TestUserService_RegisterThenAuthenticate_PaddedPassword(t *testing.T) {
	s, mock := setupUserService(t)
	now := time.Now()

	// 前後に空白のあるパスワードで登録し、保存されるハッシュを捕捉する
	hashCaptor := &stringCaptor{}
	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "Gopher Dev", "gopher@example.com", hashCaptor).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := s.RegisterUser(context.Background(), models.UserRegisterRequest{
		Name:     "Gopher Dev",
		Email:    "gopher@example.com",
		Password: " password123 ",
	})
	require.NoError(t, err)
	require.NotEmpty(t, hashCaptor.value)

	// 登録時と全く同じ文字列でログインできること
	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("gopher@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("user-1", "Gopher Dev", "gopher@example.com", hashCaptor.value, now, now))

	user, err := s.AuthenticateUser(context.Background(), models.UserLoginRequest{
		Email:    "gopher@example.com",
		Password: " password123 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Empty(t, user.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate_WrongPassword(t *testing.T) {
	s, mock := setupUserService(t)
	now := time.Now()

	hash, err := repositories.HashPassword("password123")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("gopher@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("user-1", "Gopher Dev", "gopher@example.com", hash, now, now))

	_, err = s.AuthenticateUser(context.Background(), models.UserLoginRequest{
		Email:    "gopher@example.com",
		Password: "another-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.NoError(t, mock.ExpectationsWereMet())
}
