package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"blogapi/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist. Handlers
// rely on errors.Is against it to produce 404 responses.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListVisible(ctx context.Context, now time.Time, page, pageSize int) ([]models.Post, int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByImageID(ctx context.Context, imageID string) (*models.Image, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Image, error)
	Delete(ctx context.Context, imageID string) error
	DeleteByPostID(ctx context.Context, postID string) error
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Session SessionRepository
	Image   ImageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Session: NewSessionRepository(db),
		Image:   NewImageRepository(db),
	}
}
