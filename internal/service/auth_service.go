package service

import (
	"context"
	"errors"
	"fmt"

	"blogapi/internal/config"
	"blogapi/internal/models"
	"blogapi/internal/repository"
)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, req CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *models.Session, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*models.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

func (s *authService) Register(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	existingUser, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existingUser != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, req.Email)
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
	}

	// the lookup above races with concurrent registrations, the unique
	// index on email is the real arbiter
	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, req.Email)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and mints a fresh session row. The
// caller is expected to discard any session the request already carried,
// so a successful login always rotates the session id.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, *models.Session, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	// revoke every session the user already holds, a fresh login is the
	// only live session afterwards
	if err := s.sessionRepo.DeleteByUserID(ctx, user.UserID); err != nil {
		return nil, nil, fmt.Errorf("failed to revoke prior sessions: %w", err)
	}

	session := &models.Session{
		UserID:    user.UserID,
		ExpiresAt: nowFunc().Add(s.cfg.SessionDuration),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return user, session, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// CurrentUser resolves a session cookie value to its user. Expired or
// unknown sessions come back as ErrUnauthenticated.
func (s *authService) CurrentUser(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}

	return user, nil
}
