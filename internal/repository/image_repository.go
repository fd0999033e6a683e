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

type ImageRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.Image) error {
	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO images (image_id, post_id, image_url, created_at)
		VALUES (:image_id, :post_id, :image_url, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, image)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) GetByImageID(ctx context.Context, imageID string) (*models.Image, error) {
	var image models.Image

	query := `SELECT * FROM images WHERE image_id = $1`

	err := r.db.GetContext(ctx, &image, query, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("image %s: %w", imageID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return &image, nil
}

func (r *ImageRepositoryImpl) GetByPostID(ctx context.Context, postID string) ([]models.Image, error) {
	var images []models.Image

	query := `SELECT * FROM images WHERE post_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &images, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list post images: %w", err)
	}

	return images, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, imageID string) error {
	query := `DELETE FROM images WHERE image_id = $1`

	result, err := r.db.ExecContext(ctx, query, imageID)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("image %s: %w", imageID, ErrNotFound)
	}

	return nil
}

func (r *ImageRepositoryImpl) DeleteByPostID(ctx context.Context, postID string) error {
	query := `DELETE FROM images WHERE post_id = $1`

	_, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post images: %w", err)
	}

	return nil
}
