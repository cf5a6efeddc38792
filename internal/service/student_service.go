package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/repository"
)

type studentStore interface {
	List(ctx context.Context) ([]model.Student, error)
	Search(ctx context.Context, keyword string) ([]model.Student, error)
	GetByID(ctx context.Context, id int) (*model.Student, error)
	GetByUserID(ctx context.Context, userID int) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, student *model.Student) error
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id int) error
}

// StudentService handles student profile management.
type StudentService struct {
	repo studentStore
}

// NewStudentService creates a new StudentService.
func NewStudentService(repo studentStore) *StudentService {
	return &StudentService{repo: repo}
}

// List retrieves all students.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.repo.List(ctx)
}

// Search retrieves students matching the keyword by name or email.
func (s *StudentService) Search(ctx context.Context, keyword string) ([]model.Student, error) {
	return s.repo.Search(ctx, keyword)
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return student, nil
}

// GetByUserID retrieves the student profile linked to a user account.
func (s *StudentService) GetByUserID(ctx context.Context, userID int) (*model.Student, error) {
	student, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return student, nil
}

// Create registers a new student. The email pre-check gives a friendly
// error on the common path; the unique index still guards concurrent
// creates. The enrollment date is fixed to now and never changes.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest, dob time.Time) (*model.Student, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, repository.ErrDuplicateEmail
	}

	student := model.NewStudent(req.FirstName, req.LastName, req.Email, req.Phone,
		req.Address, dob, req.UserID, time.Now())
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Update modifies a student's profile fields. The enrollment date is
// immutable and the linked account never changes.
func (s *StudentService) Update(ctx context.Context, id int, req *model.CreateStudentRequest, dob time.Time) (*model.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if req.Email != student.Email {
		exists, err := s.repo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if exists {
			return nil, repository.ErrDuplicateEmail
		}
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Email = req.Email
	student.Phone = req.Phone
	student.Address = req.Address
	student.DOB = dob
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student together with their enrollments, attendance
// and payments.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return s.repo.Delete(ctx, id)
}
