package users

import "context"

// Service contains business logic for user administration.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Get returns a user by ID. ErrNotFound propagates from the repo.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.Repo.GetByID(ctx, id)
}

// GetByUsername returns a user by username.
func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.Repo.GetByUsername(ctx, username)
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

// UpdateRole validates and applies a role change, returning the updated user.
// An unknown role fails with ErrInvalidRole and leaves the stored role
// unchanged.
func (s *Service) UpdateRole(ctx context.Context, id, role string) (User, error) {
	if !ValidRole(role) {
		return User{}, ErrInvalidRole
	}
	if err := s.Repo.UpdateRole(ctx, id, role); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

// Remove deletes a user by ID.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
