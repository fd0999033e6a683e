package service

import (
	"errors"

	"blogapi/internal/config"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrEmailTaken      = errors.New("email already registered")
)

// PageSize is the fixed page size of the public post listing.
const PageSize = 20

type Service struct {
	Post PostService
	Auth AuthService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Post: NewPostService(rep.Post, rep.Image, storage),
		Auth: NewAuthService(rep.User, rep.Session, cfg),
	}
}
