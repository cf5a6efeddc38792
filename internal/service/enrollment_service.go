package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/repository"
)

type enrollmentStore interface {
	List(ctx context.Context) ([]model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int) ([]model.Enrollment, error)
	ListByStatus(ctx context.Context, status model.EnrollmentStatus) ([]model.Enrollment, error)
	GetByID(ctx context.Context, id int) (*model.Enrollment, error)
	ExistsActivePair(ctx context.Context, studentID, courseID int) (bool, error)
	Create(ctx context.Context, enrollment *model.Enrollment) error
	UpdateStatus(ctx context.Context, id int, status model.EnrollmentStatus) error
	Delete(ctx context.Context, id int) error
	CountByStatus(ctx context.Context, status model.EnrollmentStatus) (int, error)
	CountByCourse(ctx context.Context, courseID int) (int, error)
}

// EnrollmentService handles enrollment lifecycle management and the
// one-active-enrollment-per-pair rule.
type EnrollmentService struct {
	repo enrollmentStore
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(repo enrollmentStore) *EnrollmentService {
	return &EnrollmentService{repo: repo}
}

// List retrieves all enrollments.
func (s *EnrollmentService) List(ctx context.Context) ([]model.Enrollment, error) {
	return s.repo.List(ctx)
}

// ListByStudent retrieves one student's enrollments.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// ListByCourse retrieves one course's enrollments.
func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID int) ([]model.Enrollment, error) {
	return s.repo.ListByCourse(ctx, courseID)
}

// ListByStatus retrieves enrollments with the given status.
func (s *EnrollmentService) ListByStatus(ctx context.Context, status model.EnrollmentStatus) ([]model.Enrollment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: enrollment status %q", ErrInvalidState, status)
	}
	return s.repo.ListByStatus(ctx, status)
}

// GetByID retrieves an enrollment by ID.
func (s *EnrollmentService) GetByID(ctx context.Context, id int) (*model.Enrollment, error) {
	enrollment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return enrollment, nil
}

// Create enrolls a student in a course. An ACTIVE enrollment already
// covering the pair blocks the create regardless of the requested status.
// The pre-check gives a friendly error on the common path; the partial
// unique index still guards concurrent creates.
func (s *EnrollmentService) Create(ctx context.Context, req *model.CreateEnrollmentRequest) (*model.Enrollment, error) {
	exists, err := s.repo.ExistsActivePair(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("check active enrollment: %w", err)
	}
	if exists {
		return nil, repository.ErrDuplicateEnrollment
	}

	enrollment := model.NewEnrollment(req.StudentID, req.CourseID, req.Status, time.Now())
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// UpdateStatus moves an enrollment to a new lifecycle state. Any transition
// between known states is allowed; re-activating must not collide with
// another ACTIVE enrollment for the same pair.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, id int, status model.EnrollmentStatus) (*model.Enrollment, error) {
	enrollment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	enrollment.Status = status
	return enrollment, nil
}

// Delete removes an enrollment together with its attendance records.
func (s *EnrollmentService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return s.repo.Delete(ctx, id)
}

// CountActive counts ACTIVE enrollments.
func (s *EnrollmentService) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, model.EnrollmentActive)
}

// CountByCourse counts enrollments in a course.
func (s *EnrollmentService) CountByCourse(ctx context.Context, courseID int) (int, error) {
	return s.repo.CountByCourse(ctx, courseID)
}
