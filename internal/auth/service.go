package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	sharedauth "docvault-backend/internal/shared/auth"
	"docvault-backend/internal/users"
)

// Service implements registration and login.
type Service struct {
	Users  users.Repo
	Tokens *sharedauth.TokenService
}

// NewService constructs a Service.
func NewService(repo users.Repo, tokens *sharedauth.TokenService) *Service {
	return &Service{Users: repo, Tokens: tokens}
}

// Signup hashes the password and persists a new user with the default
// Viewer role. A duplicate username surfaces as users.ErrConflict.
func (s *Service) Signup(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := users.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         users.RoleViewer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.Users.Create(ctx, user)
}

// Signin verifies the credentials and returns a signed session token.
// An unknown username surfaces as users.ErrNotFound; a failed password
// comparison as ErrInvalidCredentials.
func (s *Service) Signin(ctx context.Context, username, password string) (string, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.Tokens.Sign(user.Username, user.Role)
}
