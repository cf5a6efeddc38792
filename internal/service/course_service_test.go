package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smitedu/institute-backend/internal/model"
)

// fakeCourseStore is an in-memory courseStore for unit tests.
type fakeCourseStore struct {
	nextID  int
	records map[int]*model.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{nextID: 1, records: make(map[int]*model.Course)}
}

func (f *fakeCourseStore) List(_ context.Context) ([]model.Course, error) {
	out := make([]model.Course, 0, len(f.records))
	for _, c := range f.records {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourseStore) Search(_ context.Context, _ string) ([]model.Course, error) {
	return nil, nil
}

func (f *fakeCourseStore) ListActive(_ context.Context, today time.Time) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.records {
		if !today.Before(c.StartDate) && !today.After(c.EndDate) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseStore) ListUpcoming(_ context.Context, today time.Time) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.records {
		if c.StartDate.After(today) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseStore) ListByStudent(_ context.Context, _ int) ([]model.Course, error) {
	return nil, nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int) (*model.Course, error) {
	c, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseStore) Create(_ context.Context, c *model.Course) error {
	c.ID = f.nextID
	f.nextID++
	cp := *c
	f.records[c.ID] = &cp
	return nil
}

func (f *fakeCourseStore) Update(_ context.Context, c *model.Course) error {
	if _, ok := f.records[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *c
	f.records[c.ID] = &cp
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int) error {
	delete(f.records, id)
	return nil
}

func courseReq() *model.CreateCourseRequest {
	return &model.CreateCourseRequest{
		Name:           "Go Backend Engineering",
		DurationMonths: 6,
		Fee:            25000,
	}
}

func TestCourseCreateRejectsInvertedSchedule(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore())

	_, err := svc.Create(context.Background(), courseReq(),
		day("2026-09-01"), day("2026-03-01"))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCourseCreateAllowsSingleDaySchedule(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore())

	course, err := svc.Create(context.Background(), courseReq(),
		day("2026-03-01"), day("2026-03-01"))
	require.NoError(t, err)
	assert.Equal(t, course.StartDate, course.EndDate)
}

func TestCourseUpdateRejectsInvertedSchedule(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore())
	ctx := context.Background()

	course, err := svc.Create(ctx, courseReq(), day("2026-03-01"), day("2026-09-01"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, course.ID, courseReq(), day("2026-09-01"), day("2026-03-01"))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCourseGetByIDNotFound(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore())

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
