package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smitedu/institute-backend/internal/model"
)

type courseStore interface {
	List(ctx context.Context) ([]model.Course, error)
	Search(ctx context.Context, keyword string) ([]model.Course, error)
	ListActive(ctx context.Context, today time.Time) ([]model.Course, error)
	ListUpcoming(ctx context.Context, today time.Time) ([]model.Course, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.Course, error)
	GetByID(ctx context.Context, id int) (*model.Course, error)
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id int) error
}

// CourseService handles course management.
type CourseService struct {
	repo courseStore
}

// NewCourseService creates a new CourseService.
func NewCourseService(repo courseStore) *CourseService {
	return &CourseService{repo: repo}
}

// List retrieves all courses.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.repo.List(ctx)
}

// Search retrieves courses matching the keyword by name.
func (s *CourseService) Search(ctx context.Context, keyword string) ([]model.Course, error) {
	return s.repo.Search(ctx, keyword)
}

// ListActive retrieves courses currently in session.
func (s *CourseService) ListActive(ctx context.Context) ([]model.Course, error) {
	return s.repo.ListActive(ctx, time.Now())
}

// ListUpcoming retrieves courses that have not started yet.
func (s *CourseService) ListUpcoming(ctx context.Context) ([]model.Course, error) {
	return s.repo.ListUpcoming(ctx, time.Now())
}

// ListByStudent retrieves the courses a student has ever enrolled in.
func (s *CourseService) ListByStudent(ctx context.Context, studentID int) ([]model.Course, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// GetByID retrieves a course by ID.
func (s *CourseService) GetByID(ctx context.Context, id int) (*model.Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return course, nil
}

func validateCourseDates(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("%w: start date after end date", ErrInvalidState)
	}
	return nil
}

// Create inserts a new course. The schedule must not end before it starts.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest, start, end time.Time) (*model.Course, error) {
	if err := validateCourseDates(start, end); err != nil {
		return nil, err
	}
	course := &model.Course{
		Name:           req.Name,
		Description:    req.Description,
		DurationMonths: req.DurationMonths,
		Fee:            req.Fee,
		StartDate:      start,
		EndDate:        end,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Update modifies a course.
func (s *CourseService) Update(ctx context.Context, id int, req *model.CreateCourseRequest, start, end time.Time) (*model.Course, error) {
	if err := validateCourseDates(start, end); err != nil {
		return nil, err
	}
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	course.Name = req.Name
	course.Description = req.Description
	course.DurationMonths = req.DurationMonths
	course.Fee = req.Fee
	course.StartDate = start
	course.EndDate = end
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course together with its enrollments and their attendance.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return s.repo.Delete(ctx, id)
}
