package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtilda/chipin/internal/auth"
	"github.com/mtilda/chipin/internal/models"
	"github.com/mtilda/chipin/internal/storage"
)

// AuthService handles registration, login and current-user lookup,
// issuing JWTs on success.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Session is the result of a successful registration or login.
type Session struct {
	User  *models.User
	Token string
}

// Register creates a new user account and returns a session for it.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*Session, error) {
	if email == "" || displayName == "" {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		slog.Warn("registration failed", "email", email, "error", err)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return &Session{User: user, Token: token}, nil
}

// Login authenticates a user and returns a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("login failed", "email", email)
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return &Session{User: user, Token: token}, nil
}

// CurrentUser resolves an authenticated user ID to its profile.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	return user, nil
}
