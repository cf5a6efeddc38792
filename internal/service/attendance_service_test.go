package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/repository"
)

// fakeAttendanceStore is an in-memory attendanceStore for unit tests.
type fakeAttendanceStore struct {
	nextID  int
	records map[int]*model.Attendance
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{nextID: 1, records: make(map[int]*model.Attendance)}
}

func (f *fakeAttendanceStore) ListByEnrollment(_ context.Context, enrollmentID int) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, a := range f.records {
		if a.EnrollmentID == enrollmentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListByDate(_ context.Context, date time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, a := range f.records {
		if a.Date.Equal(date) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListByDateRange(_ context.Context, from, to time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, a := range f.records {
		if !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) ListByEnrollmentAndRange(ctx context.Context, enrollmentID int, from, to time.Time) ([]model.Attendance, error) {
	all, _ := f.ListByDateRange(ctx, from, to)
	var out []model.Attendance
	for _, a := range all {
		if a.EnrollmentID == enrollmentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) GetByID(_ context.Context, id int) (*model.Attendance, error) {
	a, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttendanceStore) ExistsByEnrollmentAndDate(_ context.Context, enrollmentID int, date time.Time) (bool, error) {
	for _, a := range f.records {
		if a.EnrollmentID == enrollmentID && a.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceStore) Create(_ context.Context, a *model.Attendance) error {
	a.ID = f.nextID
	f.nextID++
	cp := *a
	f.records[a.ID] = &cp
	return nil
}

func (f *fakeAttendanceStore) UpdateStatus(_ context.Context, id int, status model.AttendanceStatus) error {
	a, ok := f.records[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.Status = status
	return nil
}

func (f *fakeAttendanceStore) Delete(_ context.Context, id int) error {
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceStore) CountByEnrollment(_ context.Context, enrollmentID int) (int, error) {
	n := 0
	for _, a := range f.records {
		if a.EnrollmentID == enrollmentID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttendanceStore) CountByEnrollmentAndStatus(_ context.Context, enrollmentID int, status model.AttendanceStatus) (int, error) {
	n := 0
	for _, a := range f.records {
		if a.EnrollmentID == enrollmentID && a.Status == status {
			n++
		}
	}
	return n, nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAttendanceMarkRejectsSameDay(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceStore())
	ctx := context.Background()

	_, err := svc.Mark(ctx, 1, day("2026-03-02"), model.AttendancePresent)
	require.NoError(t, err)

	// Same day again, regardless of status.
	_, err = svc.Mark(ctx, 1, day("2026-03-02"), model.AttendanceAbsent)
	assert.ErrorIs(t, err, repository.ErrDuplicateAttendance)

	// Different day and different enrollment both pass.
	_, err = svc.Mark(ctx, 1, day("2026-03-03"), model.AttendancePresent)
	assert.NoError(t, err)
	_, err = svc.Mark(ctx, 2, day("2026-03-02"), model.AttendancePresent)
	assert.NoError(t, err)
}

func TestAttendanceCorrectionKeepsDay(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceStore())
	ctx := context.Background()

	record, err := svc.Mark(ctx, 1, day("2026-03-02"), model.AttendanceAbsent)
	require.NoError(t, err)

	corrected, err := svc.UpdateStatus(ctx, record.ID, model.AttendancePresent)
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, corrected.Status)
	assert.Equal(t, record.Date, corrected.Date)

	// Still one record for the day.
	records, err := svc.ListByEnrollment(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttendanceSummary(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceStore())
	ctx := context.Background()

	statuses := []model.AttendanceStatus{
		model.AttendancePresent,
		model.AttendancePresent,
		model.AttendancePresent,
		model.AttendanceAbsent,
		model.AttendanceLate,
		model.AttendanceExcused,
	}
	for i, status := range statuses {
		_, err := svc.Mark(ctx, 1, day("2026-03-02").AddDate(0, 0, i), status)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, summary.TotalDays)
	assert.Equal(t, 3, summary.PresentDays)
	assert.Equal(t, 1, summary.AbsentDays)
	// Only PRESENT counts toward the percentage: 3 of 6.
	assert.InDelta(t, 50.0, summary.Percentage, 0.0001)
}

func TestAttendanceSummaryEmptyIsZero(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceStore())

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalDays)
	assert.Equal(t, 0.0, summary.Percentage)
}

func TestAttendanceRangeValidation(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceStore())
	ctx := context.Background()

	_, err := svc.ListByDateRange(ctx, day("2026-03-10"), day("2026-03-01"))
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.ListByEnrollmentAndRange(ctx, 1, day("2026-03-10"), day("2026-03-01"))
	assert.ErrorIs(t, err, ErrInvalidState)

	// Single-day range is fine.
	_, err = svc.ListByDateRange(ctx, day("2026-03-01"), day("2026-03-01"))
	assert.NoError(t, err)
}
