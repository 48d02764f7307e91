package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/errajput/todo-api/internal/models"
)

func setupUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db, zap.NewNop().Sugar()), mock
}

func TestUserRepository_Create_Success(t *testing.T) {
	repo, mock := setupUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUserQuery)).
		WithArgs(sqlmock.AnyArg(), "Gopher Dev", "gopher@example.com", "hashed-password").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), &models.User{
		Name:         "Gopher Dev",
		Email:        "gopher@example.com",
		PasswordHash: "hashed-password",
	})
	require.NoError(t, err)

	// IDはUUIDで採番される
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := setupUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUserQuery)).
		WithArgs(sqlmock.AnyArg(), "Gopher Dev", "gopher@example.com", "hashed-password").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), &models.User{
		Name:         "Gopher Dev",
		Email:        "gopher@example.com",
		PasswordHash: "hashed-password",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo, mock := setupUserRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailQuery)).
		WithArgs("gopher@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow("user-1", "Gopher Dev", "gopher@example.com", "hashed-password", now, now))

	u, err := repo.FindByEmail(context.Background(), "gopher@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, "hashed-password", u.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := setupUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailQuery)).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateName_NotFound(t *testing.T) {
	repo, mock := setupUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(updateUserNameQuery)).
		WithArgs("New Name", "missing-user").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateName(context.Background(), "missing-user", "New Name")
	assert.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
