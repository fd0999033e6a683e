package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/models"
)

var userTestColumns = []string{"user_id", "name", "email", "password_hash", "created_at"}

func newUserRepoMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB)

	return repo, mock, func() { db.Close() }
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo, mock, closeDB := newUserRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	password := "password123"

	user := &models.User{
		Name:  "Alice",
		Email: "alice@example.com",
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(
			sqlmock.AnyArg(), // user_id generated in the repository
			user.Name,
			user.Email,
			sqlmock.AnyArg(), // password_hash
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateUser(ctx, user, password)

	assert.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.NotEqual(t, password, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	repo, mock, closeDB := newUserRepoMock(t)
	defer closeDB()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.CreateUser(context.Background(), &models.User{
		Name:  "Alice",
		Email: "alice@example.com",
	}, "password123")

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByID(t *testing.T) {
	repo, mock, closeDB := newUserRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("returns user", func(t *testing.T) {
		rows := sqlmock.NewRows(userTestColumns).
			AddRow(userID, "Alice", "alice@example.com", "hash", time.Now())

		mock.ExpectQuery("SELECT \\* FROM users").
			WithArgs(userID).
			WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM users").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userTestColumns))

		_, err := repo.GetUserByID(ctx, userID)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	repo, mock, closeDB := newUserRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	userID := uuid.New().String()
	email := "alice@example.com"
	password := "password123"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("correct password returns user", func(t *testing.T) {
		rows := sqlmock.NewRows(userTestColumns).
			AddRow(userID, "Alice", email, string(hash), time.Now())

		mock.ExpectQuery("SELECT \\* FROM users").
			WithArgs(email).
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, email, password)

		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
	})

	t.Run("wrong password maps to ErrInvalidCredentials", func(t *testing.T) {
		rows := sqlmock.NewRows(userTestColumns).
			AddRow(userID, "Alice", email, string(hash), time.Now())

		mock.ExpectQuery("SELECT \\* FROM users").
			WithArgs(email).
			WillReturnRows(rows)

		_, err := repo.VerifyPassword(ctx, email, "wrong-password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to ErrInvalidCredentials", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM users").
			WithArgs(email).
			WillReturnRows(sqlmock.NewRows(userTestColumns))

		_, err := repo.VerifyPassword(ctx, email, password)

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
