package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/models"
)

var postTestColumns = []string{
	"post_id", "author_id", "title", "content", "is_draft",
	"published_at", "created_at", "updated_at", "author_name", "author_email",
}

func newPostRepoMock(t *testing.T) (*PostRepositoryImpl, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewPostRepository(sqlxDB)

	return repo, mock, func() { db.Close() }
}

func TestPostRepository_Create(t *testing.T) {
	repo, mock, closeDB := newPostRepoMock(t)
	defer closeDB()

	ctx := context.Background()

	post := &models.Post{
		AuthorID: uuid.New().String(),
		Title:    "Test Post",
		Content:  "Test Content",
		IsDraft:  false,
	}

	mock.ExpectExec("INSERT INTO posts").
		WithArgs(
			sqlmock.AnyArg(), // post_id generated in the repository
			post.AuthorID,
			post.Title,
			post.Content,
			post.IsDraft,
			nil,
			sqlmock.AnyArg(), // created_at
			sqlmock.AnyArg(), // updated_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(ctx, post)

	assert.NoError(t, err)
	assert.NotEmpty(t, post.PostID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	repo, mock, closeDB := newPostRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	postID := uuid.New().String()
	authorID := uuid.New().String()
	now := time.Now()

	t.Run("returns post with author", func(t *testing.T) {
		rows := sqlmock.NewRows(postTestColumns).
			AddRow(postID, authorID, "Test Post", "Test Content", false,
				nil, now, now, "Alice", "alice@example.com")

		mock.ExpectQuery("FROM posts p").
			WithArgs(postID).
			WillReturnRows(rows)

		post, err := repo.GetByID(ctx, postID)

		require.NoError(t, err)
		assert.Equal(t, postID, post.PostID)
		assert.Equal(t, "Test Post", post.Title)
		assert.Nil(t, post.PublishedAt)
		require.NotNil(t, post.Author)
		assert.Equal(t, authorID, post.Author.UserID)
		assert.Equal(t, "Alice", post.Author.Name)
		assert.Equal(t, "alice@example.com", post.Author.Email)
	})

	t.Run("missing post maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM posts p").
			WithArgs(postID).
			WillReturnRows(sqlmock.NewRows(postTestColumns))

		_, err := repo.GetByID(ctx, postID)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostRepository_ListVisible(t *testing.T) {
	repo, mock, closeDB := newPostRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	now := time.Now()

	t.Run("returns one page and the visible total", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WithArgs(now).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

		rows := sqlmock.NewRows(postTestColumns)
		for i := 0; i < 20; i++ {
			rows.AddRow(
				fmt.Sprintf("post-%02d", i), "author-1",
				fmt.Sprintf("Post %d", i), "Content", false,
				nil, now.Add(time.Duration(i)*time.Minute), now, "Alice", "alice@example.com")
		}

		mock.ExpectQuery("ORDER BY p.created_at").
			WithArgs(now, 20, 0).
			WillReturnRows(rows)

		posts, total, err := repo.ListVisible(ctx, now, 1, 20)

		require.NoError(t, err)
		assert.Len(t, posts, 20)
		assert.Equal(t, 25, total)
		assert.Equal(t, "post-00", posts[0].PostID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second page uses the offset", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WithArgs(now).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

		rows := sqlmock.NewRows(postTestColumns)
		for i := 20; i < 25; i++ {
			rows.AddRow(
				fmt.Sprintf("post-%02d", i), "author-1",
				fmt.Sprintf("Post %d", i), "Content", false,
				nil, now, now, "Alice", "alice@example.com")
		}

		mock.ExpectQuery("ORDER BY p.created_at").
			WithArgs(now, 20, 20).
			WillReturnRows(rows)

		posts, total, err := repo.ListVisible(ctx, now, 2, 20)

		require.NoError(t, err)
		assert.Len(t, posts, 5)
		assert.Equal(t, 25, total)
	})

	t.Run("page below one is clamped", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WithArgs(now).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery("ORDER BY p.created_at").
			WithArgs(now, 20, 0).
			WillReturnRows(sqlmock.NewRows(postTestColumns))

		posts, total, err := repo.ListVisible(ctx, now, 0, 20)

		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.Zero(t, total)
	})
}

func TestPostRepository_Update(t *testing.T) {
	repo, mock, closeDB := newPostRepoMock(t)
	defer closeDB()

	ctx := context.Background()

	post := &models.Post{
		PostID:   uuid.New().String(),
		AuthorID: uuid.New().String(),
		Title:    "Updated Title",
		Content:  "Updated Content",
		IsDraft:  true,
	}

	t.Run("updates mutable fields", func(t *testing.T) {
		mock.ExpectExec("UPDATE posts SET").
			WithArgs(
				post.Title,
				post.Content,
				post.IsDraft,
				nil,
				sqlmock.AnyArg(), // updated_at
				post.PostID,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, post)

		assert.NoError(t, err)
	})

	t.Run("zero rows maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE posts SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, post)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostRepository_Delete(t *testing.T) {
	repo, mock, closeDB := newPostRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	postID := uuid.New().String()

	t.Run("deletes the row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM posts").
			WithArgs(postID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(ctx, postID)

		assert.NoError(t, err)
	})

	t.Run("zero rows maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM posts").
			WithArgs(postID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, postID)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
