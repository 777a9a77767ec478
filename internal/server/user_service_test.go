package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertDBUserToTypesUser(t *testing.T) {
	now := time.Now()
	dbUser := &db.User{
		ID:           uuid.New(),
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "hashed-password",
		Role:         db.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	u := convertDBUserToTypesUser(dbUser)
	require.NotNil(t, u)
	assert.Equal(t, dbUser.ID, u.ID)
	assert.Equal(t, dbUser.Email, u.Email)
	assert.Equal(t, db.RoleAdmin, u.Role)
	assert.Equal(t, now, u.CreatedAt)

	assert.Nil(t, convertDBUserToTypesUser(nil))
}

func newTestUserService(store *memStore) *UserService {
	return NewUserService(store, testPasswordConfig())
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(newMemStore())

	user, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Jordan", Email: "jordan@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &types.CreateUserRequest{Name: "Again", Email: "jordan@example.com", Password: "password123"})
	var exists *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &exists)

	got, err := svc.Login(ctx, &types.LoginRequest{Email: "jordan@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "jordan@example.com", Password: "nope"})
	var creds *ErrInvalidCredentials
	assert.ErrorAs(t, err, &creds)
}

func TestUserService_Login_NoPasswordSet(t *testing.T) {
	store := newMemStore()
	id, err := store.CreateUser(context.Background(), "Jordan", "jordan@example.com", "")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	_, err = newTestUserService(store).Login(context.Background(), &types.LoginRequest{Email: "jordan@example.com", Password: ""})
	var creds *ErrInvalidCredentials
	assert.ErrorAs(t, err, &creds)
}

func TestUserService_UpdatePassword_UnknownUser(t *testing.T) {
	err := newTestUserService(newMemStore()).UpdatePassword(context.Background(), uuid.New(), "a", "password123")
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestUserService(store)
	user, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Jordan", Email: "jordan@example.com", Password: "password123"})
	require.NoError(t, err)

	p, err := svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{
		Headline: "  Backend   engineer ",
		Skills:   []string{"Go", " go", "PostgreSQL", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", p.Headline)
	assert.Equal(t, []string{"go", "postgresql"}, p.Skills)

	stored, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, *p, *stored)

	_, err = svc.UpdateProfile(ctx, uuid.New(), &types.UpdateProfileRequest{})
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestUserService_AbsorbResume(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(newMemStore())
	user, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Jordan", Email: "jordan@example.com", Password: "password123"})
	require.NoError(t, err)
	_, err = svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{Headline: "Engineer", Skills: []string{"go", "react"}})
	require.NoError(t, err)

	resume := "Built services in Python and React with Docker."
	p, err := svc.AbsorbResume(ctx, user.ID, resume)
	require.NoError(t, err)

	assert.Equal(t, "Engineer", p.Headline)
	assert.Equal(t, resume, p.ResumeText)
	assert.Equal(t, []string{"go", "react", "python", "docker"}, p.Skills)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	_, err := newTestUserService(newMemStore()).GetProfile(context.Background(), uuid.New())
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}
