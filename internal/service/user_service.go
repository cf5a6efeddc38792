package service

import (
	"context"
	"fmt"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/repository"
)

type userStore interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	Delete(ctx context.Context, id int) error
}

type passwordHasher interface {
	HashPassword(password string) (string, error)
}

// UserService handles login account management.
type UserService struct {
	repo   userStore
	hasher passwordHasher
}

// NewUserService creates a new UserService.
func NewUserService(repo userStore, hasher passwordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// List retrieves all user accounts.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a user account by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return user, nil
}

// Create hashes the password and inserts a new account. The username
// pre-check gives a friendly error on the common path; the unique index
// still guards concurrent creates.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, repository.ErrDuplicateUsername
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		RoleID:       req.RoleID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update modifies an account's username and role. The password is left
// untouched; use UpdatePassword for that.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if req.Username != user.Username {
		exists, err := s.repo.ExistsByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if exists {
			return nil, repository.ErrDuplicateUsername
		}
	}

	user.Username = req.Username
	user.RoleID = req.RoleID
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// UpdatePassword hashes and stores a new password for the account.
func (s *UserService) UpdatePassword(ctx context.Context, id int, password string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

// Delete removes an account together with its linked student profile and
// the profile's dependent records.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return s.repo.Delete(ctx, id)
}
