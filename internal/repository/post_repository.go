package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogapi/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// postRow carries a post joined with its author's public fields.
type postRow struct {
	models.Post
	AuthorName  string `db:"author_name"`
	AuthorEmail string `db:"author_email"`
}

func (row *postRow) toPost() models.Post {
	post := row.Post
	post.Author = &models.User{
		UserID: post.AuthorID,
		Name:   row.AuthorName,
		Email:  row.AuthorEmail,
	}
	return post
}

const postColumns = `
        p.post_id, p.author_id, p.title, p.content, p.is_draft,
        p.published_at, p.created_at, p.updated_at,
        u.name AS author_name, u.email AS author_email
`

// visibleWhere mirrors policy.Visible for the SQL side of the list path.
// Keep the two in sync; policy_test pins the semantics.
const visibleWhere = `p.is_draft = FALSE AND (p.published_at IS NULL OR p.published_at <= $1)`

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
        INSERT INTO posts
        (post_id, author_id, title, content, is_draft, published_at, created_at, updated_at)
        VALUES
        (:post_id, :author_id, :title, :content, :is_draft, :published_at, :created_at, :updated_at)
    `

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `
        SELECT ` + postColumns + `
        FROM posts p
        JOIN users u ON u.user_id = p.author_id
        WHERE p.post_id = $1
    `

	var row postRow
	err := r.db.GetContext(ctx, &row, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post := row.toPost()
	return &post, nil
}

// ListVisible returns one page of publicly visible posts in insertion
// order, plus the total count of visible posts for pagination metadata.
// Pages are 1-indexed.
func (r *PostRepositoryImpl) ListVisible(ctx context.Context, now time.Time, page, pageSize int) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	countQuery := `
        SELECT COUNT(*)
        FROM posts p
        WHERE ` + visibleWhere + `
    `

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, now); err != nil {
		return nil, 0, fmt.Errorf("failed to count visible posts: %w", err)
	}

	query := `
        SELECT ` + postColumns + `
        FROM posts p
        JOIN users u ON u.user_id = p.author_id
        WHERE ` + visibleWhere + `
        ORDER BY p.created_at, p.post_id
        LIMIT $2 OFFSET $3
    `

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, now, pageSize, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list visible posts: %w", err)
	}

	posts := make([]models.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toPost())
	}

	return posts, total, nil
}

// Update writes the mutable fields. Authorization is the caller's job;
// the repository only reports whether the row existed.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
        UPDATE posts SET
            title = :title,
            content = :content,
            is_draft = :is_draft,
            published_at = :published_at,
            updated_at = :updated_at
        WHERE post_id = :post_id
    `

	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}

	return nil
}
