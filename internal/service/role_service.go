package service

import (
	"context"

	"github.com/smitedu/institute-backend/internal/model"
)

type roleStore interface {
	List(ctx context.Context) ([]model.Role, error)
	GetByID(ctx context.Context, id int) (*model.Role, error)
	Create(ctx context.Context, role *model.Role) error
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id int) error
}

// RoleService handles role management.
type RoleService struct {
	repo roleStore
}

// NewRoleService creates a new RoleService.
func NewRoleService(repo roleStore) *RoleService {
	return &RoleService{repo: repo}
}

// List retrieves all roles.
func (s *RoleService) List(ctx context.Context) ([]model.Role, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a role by ID.
func (s *RoleService) GetByID(ctx context.Context, id int) (*model.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return role, nil
}

// Create inserts a new role.
func (s *RoleService) Create(ctx context.Context, req *model.CreateRoleRequest) (*model.Role, error) {
	role := &model.Role{Name: req.Name}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Update renames a role.
func (s *RoleService) Update(ctx context.Context, id int, req *model.CreateRoleRequest) (*model.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	role.Name = req.Name
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a role. Deleting a role still referenced by accounts
// fails with repository.ErrRoleInUse.
func (s *RoleService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return s.repo.Delete(ctx, id)
}
