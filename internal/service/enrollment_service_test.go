package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/repository"
)

// fakeEnrollmentStore is an in-memory enrollmentStore for unit tests.
type fakeEnrollmentStore struct {
	nextID  int
	records map[int]*model.Enrollment
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{nextID: 1, records: make(map[int]*model.Enrollment)}
}

func (f *fakeEnrollmentStore) List(_ context.Context) ([]model.Enrollment, error) {
	out := make([]model.Enrollment, 0, len(f.records))
	for _, e := range f.records {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID int) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.records {
		if e.StudentID == studentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID int) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.records {
		if e.CourseID == courseID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListByStatus(_ context.Context, status model.EnrollmentStatus) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.records {
		if e.Status == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id int) (*model.Enrollment, error) {
	e, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEnrollmentStore) ExistsActivePair(_ context.Context, studentID, courseID int) (bool, error) {
	for _, e := range f.records {
		if e.StudentID == studentID && e.CourseID == courseID && e.Status == model.EnrollmentActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentStore) Create(_ context.Context, e *model.Enrollment) error {
	e.ID = f.nextID
	f.nextID++
	cp := *e
	f.records[e.ID] = &cp
	return nil
}

func (f *fakeEnrollmentStore) UpdateStatus(_ context.Context, id int, status model.EnrollmentStatus) error {
	e, ok := f.records[id]
	if !ok {
		return pgx.ErrNoRows
	}
	e.Status = status
	return nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, id int) error {
	delete(f.records, id)
	return nil
}

func (f *fakeEnrollmentStore) CountByStatus(_ context.Context, status model.EnrollmentStatus) (int, error) {
	n := 0
	for _, e := range f.records {
		if e.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeEnrollmentStore) CountByCourse(_ context.Context, courseID int) (int, error) {
	n := 0
	for _, e := range f.records {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func TestEnrollmentCreateDefaultsToActive(t *testing.T) {
	svc := NewEnrollmentService(newFakeEnrollmentStore())

	enrollment, err := svc.Create(context.Background(), &model.CreateEnrollmentRequest{
		StudentID: 1,
		CourseID:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentActive, enrollment.Status)
	assert.False(t, enrollment.EnrollmentDate.IsZero())
}

func TestEnrollmentCreateRejectsActiveDuplicate(t *testing.T) {
	svc := NewEnrollmentService(newFakeEnrollmentStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateEnrollmentRequest{StudentID: 1, CourseID: 2})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.CreateEnrollmentRequest{StudentID: 1, CourseID: 2})
	assert.ErrorIs(t, err, repository.ErrDuplicateEnrollment)

	// Another ACTIVE enrollment also blocks a non-ACTIVE create for the pair.
	_, err = svc.Create(ctx, &model.CreateEnrollmentRequest{
		StudentID: 1, CourseID: 2, Status: model.EnrollmentCompleted,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEnrollment)
}

func TestEnrollmentCreateAllowsReenrollAfterCompletion(t *testing.T) {
	svc := NewEnrollmentService(newFakeEnrollmentStore())
	ctx := context.Background()

	first, err := svc.Create(ctx, &model.CreateEnrollmentRequest{StudentID: 1, CourseID: 2})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, model.EnrollmentCompleted)
	require.NoError(t, err)

	second, err := svc.Create(ctx, &model.CreateEnrollmentRequest{StudentID: 1, CourseID: 2})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestEnrollmentCreateAllowsDifferentPairs(t *testing.T) {
	svc := NewEnrollmentService(newFakeEnrollmentStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateEnrollmentRequest{StudentID: 1, CourseID: 2})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.CreateEnrollmentRequest{StudentID: 1, CourseID: 3})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, &model.CreateEnrollmentRequest{StudentID: 2, CourseID: 2})
	assert.NoError(t, err)
}

func TestEnrollmentUpdateStatusNotFound(t *testing.T) {
	svc := NewEnrollmentService(newFakeEnrollmentStore())

	_, err := svc.UpdateStatus(context.Background(), 99, model.EnrollmentDropped)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnrollmentListByStatusRejectsUnknown(t *testing.T) {
	svc := NewEnrollmentService(newFakeEnrollmentStore())

	_, err := svc.ListByStatus(context.Background(), "ARCHIVED")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEnrollmentCountActive(t *testing.T) {
	svc := NewEnrollmentService(newFakeEnrollmentStore())
	ctx := context.Background()

	first, err := svc.Create(ctx, &model.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &model.CreateEnrollmentRequest{StudentID: 2, CourseID: 1})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, model.EnrollmentDropped)
	require.NoError(t, err)

	count, err := svc.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
