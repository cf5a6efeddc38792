package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/repository"
)

type attendanceStore interface {
	ListByEnrollment(ctx context.Context, enrollmentID int) ([]model.Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.Attendance, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Attendance, error)
	ListByEnrollmentAndRange(ctx context.Context, enrollmentID int, from, to time.Time) ([]model.Attendance, error)
	GetByID(ctx context.Context, id int) (*model.Attendance, error)
	ExistsByEnrollmentAndDate(ctx context.Context, enrollmentID int, date time.Time) (bool, error)
	Create(ctx context.Context, attendance *model.Attendance) error
	UpdateStatus(ctx context.Context, id int, status model.AttendanceStatus) error
	Delete(ctx context.Context, id int) error
	CountByEnrollment(ctx context.Context, enrollmentID int) (int, error)
	CountByEnrollmentAndStatus(ctx context.Context, enrollmentID int, status model.AttendanceStatus) (int, error)
}

// AttendanceService handles daily attendance and the per-enrollment
// attendance summary.
type AttendanceService struct {
	repo attendanceStore
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(repo attendanceStore) *AttendanceService {
	return &AttendanceService{repo: repo}
}

// ListByEnrollment retrieves one enrollment's attendance records.
func (s *AttendanceService) ListByEnrollment(ctx context.Context, enrollmentID int) ([]model.Attendance, error) {
	return s.repo.ListByEnrollment(ctx, enrollmentID)
}

// ListByDate retrieves all attendance records for one day.
func (s *AttendanceService) ListByDate(ctx context.Context, date time.Time) ([]model.Attendance, error) {
	return s.repo.ListByDate(ctx, date)
}

// ListByDateRange retrieves attendance records within [from, to].
func (s *AttendanceService) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Attendance, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: range start after range end", ErrInvalidState)
	}
	return s.repo.ListByDateRange(ctx, from, to)
}

// ListByEnrollmentAndRange retrieves one enrollment's records within [from, to].
func (s *AttendanceService) ListByEnrollmentAndRange(ctx context.Context, enrollmentID int, from, to time.Time) ([]model.Attendance, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: range start after range end", ErrInvalidState)
	}
	return s.repo.ListByEnrollmentAndRange(ctx, enrollmentID, from, to)
}

// GetByID retrieves an attendance record by ID.
func (s *AttendanceService) GetByID(ctx context.Context, id int) (*model.Attendance, error) {
	attendance, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return attendance, nil
}

// Mark records attendance for one enrollment on one day. A record already
// covering the (enrollment, date) pair blocks the create; corrections go
// through UpdateStatus instead. The pre-check gives a friendly error on
// the common path; the unique constraint still guards concurrent marks.
func (s *AttendanceService) Mark(ctx context.Context, enrollmentID int, date time.Time, status model.AttendanceStatus) (*model.Attendance, error) {
	exists, err := s.repo.ExistsByEnrollmentAndDate(ctx, enrollmentID, date)
	if err != nil {
		return nil, fmt.Errorf("check attendance: %w", err)
	}
	if exists {
		return nil, repository.ErrDuplicateAttendance
	}

	attendance := &model.Attendance{
		EnrollmentID: enrollmentID,
		Date:         date,
		Status:       status,
	}
	if err := s.repo.Create(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// UpdateStatus corrects an existing record's status. The enrollment and
// date are immutable, which keeps the one-record-per-day rule intact.
func (s *AttendanceService) UpdateStatus(ctx context.Context, id int, status model.AttendanceStatus) (*model.Attendance, error) {
	attendance, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	attendance.Status = status
	return attendance, nil
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return notFoundOr(err)
	}
	return s.repo.Delete(ctx, id)
}

// Summary computes one enrollment's attendance metrics. With no records
// the percentage is 0, never a division error. Only PRESENT days count
// toward the percentage; LATE and EXCUSED do not.
func (s *AttendanceService) Summary(ctx context.Context, enrollmentID int) (*model.AttendanceSummary, error) {
	total, err := s.repo.CountByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	present, err := s.repo.CountByEnrollmentAndStatus(ctx, enrollmentID, model.AttendancePresent)
	if err != nil {
		return nil, err
	}
	absent, err := s.repo.CountByEnrollmentAndStatus(ctx, enrollmentID, model.AttendanceAbsent)
	if err != nil {
		return nil, err
	}

	summary := &model.AttendanceSummary{
		EnrollmentID: enrollmentID,
		TotalDays:    total,
		PresentDays:  present,
		AbsentDays:   absent,
	}
	if total > 0 {
		summary.Percentage = float64(present) * 100 / float64(total)
	}
	return summary, nil
}
