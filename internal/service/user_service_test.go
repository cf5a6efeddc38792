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

// fakeUserStore is an in-memory userStore for unit tests.
type fakeUserStore struct {
	nextID  int
	records map[int]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, records: make(map[int]*model.User)}
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.records))
	for _, u := range f.records {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	u, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range f.records {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.records[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, u *model.User) error {
	stored, ok := f.records[u.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Username = u.Username
	stored.RoleID = u.RoleID
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id int, passwordHash string) error {
	stored, ok := f.records[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int) error {
	delete(f.records, id)
	return nil
}

// plainHasher marks hashes deterministically so tests can assert on them.
type plainHasher struct{}

func (plainHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func TestUserCreateHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, plainHasher{})

	user, err := svc.Create(context.Background(), &model.CreateUserRequest{
		Username: "rkumar",
		Password: "secret123",
		RoleID:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, "hashed:secret123", store.records[user.ID].PasswordHash)
}

func TestUserCreateRejectsDuplicateUsername(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), plainHasher{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateUserRequest{Username: "rkumar", Password: "secret123", RoleID: 2})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.CreateUserRequest{Username: "rkumar", Password: "other456", RoleID: 1})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
}

func TestUserUpdateNeverTouchesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, plainHasher{})
	ctx := context.Background()

	user, err := svc.Create(ctx, &model.CreateUserRequest{Username: "rkumar", Password: "secret123", RoleID: 2})
	require.NoError(t, err)

	_, err = svc.Update(ctx, user.ID, &model.UpdateUserRequest{Username: "rkumar2", RoleID: 1})
	require.NoError(t, err)

	stored := store.records[user.ID]
	assert.Equal(t, "rkumar2", stored.Username)
	assert.Equal(t, 1, stored.RoleID)
	assert.Equal(t, "hashed:secret123", stored.PasswordHash)
}

func TestUserUpdateRejectsTakenUsername(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), plainHasher{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateUserRequest{Username: "first", Password: "secret123", RoleID: 1})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &model.CreateUserRequest{Username: "second", Password: "secret123", RoleID: 1})
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, &model.UpdateUserRequest{Username: "first", RoleID: 1})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	// Keeping your own username is not a collision.
	_, err = svc.Update(ctx, second.ID, &model.UpdateUserRequest{Username: "second", RoleID: 2})
	assert.NoError(t, err)
}

func TestUserUpdatePassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, plainHasher{})
	ctx := context.Background()

	user, err := svc.Create(ctx, &model.CreateUserRequest{Username: "rkumar", Password: "secret123", RoleID: 2})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "newpass789"))
	assert.Equal(t, "hashed:newpass789", store.records[user.ID].PasswordHash)

	assert.ErrorIs(t, svc.UpdatePassword(ctx, 999, "whatever"), ErrNotFound)
}
