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

// fakeStudentStore is an in-memory studentStore for unit tests.
type fakeStudentStore struct {
	nextID  int
	records map[int]*model.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{nextID: 1, records: make(map[int]*model.Student)}
}

func (f *fakeStudentStore) List(_ context.Context) ([]model.Student, error) {
	out := make([]model.Student, 0, len(f.records))
	for _, s := range f.records {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStudentStore) Search(_ context.Context, _ string) ([]model.Student, error) {
	return nil, nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int) (*model.Student, error) {
	s, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStudentStore) GetByUserID(_ context.Context, userID int) (*model.Student, error) {
	for _, s := range f.records {
		if s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStudentStore) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range f.records {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStudentStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, s := range f.records {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentStore) Create(_ context.Context, s *model.Student) error {
	s.ID = f.nextID
	f.nextID++
	cp := *s
	f.records[s.ID] = &cp
	return nil
}

func (f *fakeStudentStore) Update(_ context.Context, s *model.Student) error {
	stored, ok := f.records[s.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	// Mirrors the SQL UPDATE column list: enrollment_date and user_id
	// are never written.
	stored.FirstName = s.FirstName
	stored.LastName = s.LastName
	stored.Email = s.Email
	stored.Phone = s.Phone
	stored.Address = s.Address
	stored.DOB = s.DOB
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id int) error {
	delete(f.records, id)
	return nil
}

func studentReq(email string) *model.CreateStudentRequest {
	return &model.CreateStudentRequest{
		FirstName: "Priya",
		LastName:  "Sharma",
		Email:     email,
		Phone:     "9876543210",
		DOB:       "2002-06-15",
		UserID:    7,
	}
}

func TestStudentCreateSetsEnrollmentDate(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore())

	before := time.Now()
	student, err := svc.Create(context.Background(), studentReq("priya@example.com"), day("2002-06-15"))
	require.NoError(t, err)
	assert.False(t, student.EnrollmentDate.Before(before))
}

func TestStudentCreateRejectsDuplicateEmail(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, studentReq("priya@example.com"), day("2002-06-15"))
	require.NoError(t, err)

	req := studentReq("priya@example.com")
	req.UserID = 8
	_, err = svc.Create(ctx, req, day("2001-01-01"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestStudentUpdateKeepsEnrollmentDate(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store)
	ctx := context.Background()

	student, err := svc.Create(ctx, studentReq("priya@example.com"), day("2002-06-15"))
	require.NoError(t, err)
	original := store.records[student.ID].EnrollmentDate

	req := studentReq("priya.sharma@example.com")
	req.FirstName = "Priyanka"
	_, err = svc.Update(ctx, student.ID, req, day("2002-06-15"))
	require.NoError(t, err)

	stored := store.records[student.ID]
	assert.Equal(t, "Priyanka", stored.FirstName)
	assert.Equal(t, "priya.sharma@example.com", stored.Email)
	assert.Equal(t, original, stored.EnrollmentDate)
}

func TestStudentUpdateRejectsTakenEmail(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, studentReq("first@example.com"), day("2002-06-15"))
	require.NoError(t, err)

	reqSecond := studentReq("second@example.com")
	reqSecond.UserID = 8
	second, err := svc.Create(ctx, reqSecond, day("2001-01-01"))
	require.NoError(t, err)

	taken := studentReq("first@example.com")
	_, err = svc.Update(ctx, second.ID, taken, day("2001-01-01"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	// Keeping your own email is not a collision.
	same := studentReq("second@example.com")
	_, err = svc.Update(ctx, second.ID, same, day("2001-01-01"))
	assert.NoError(t, err)
}
