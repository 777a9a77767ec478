package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	userID := uuid.New()

	assert.Equal(t, "email already registered: jordan@example.com", (&ErrEmailAlreadyExists{Email: "jordan@example.com"}).Error())
	assert.Equal(t, "invalid email or password", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "user not found: "+userID.String(), (&ErrUserNotFound{UserID: userID}).Error())
	assert.Equal(t, "current password is incorrect", (&ErrPasswordMismatch{}).Error())
	assert.Equal(t, "validation error: new_password - must differ", (&ErrValidation{Field: "new_password", Message: "must differ"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "duplicate email", err: &ErrEmailAlreadyExists{Email: "jordan@example.com"}, expected: http.StatusConflict},
		{name: "bad credentials", err: &ErrInvalidCredentials{}, expected: http.StatusUnauthorized},
		{name: "password mismatch", err: &ErrPasswordMismatch{}, expected: http.StatusUnauthorized},
		{name: "missing user", err: &ErrUserNotFound{UserID: uuid.New()}, expected: http.StatusNotFound},
		{name: "validation", err: &ErrValidation{Field: "new_password", Message: "too short"}, expected: http.StatusBadRequest},
		{
			name:     "wrapped password mismatch",
			err:      fmt.Errorf("update password: %w", &ErrPasswordMismatch{}),
			expected: http.StatusUnauthorized,
		},
		{
			name:     "wrapped missing user",
			err:      fmt.Errorf("loading profile: %w", &ErrUserNotFound{UserID: uuid.New()}),
			expected: http.StatusNotFound,
		},
		{name: "store failure", err: fmt.Errorf("failed to get user: %w", errStoreDown), expected: http.StatusInternalServerError},
		{name: "nil", err: nil, expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

// Each case drives UserService into one of its error returns and checks the status
// the handlers would answer with.
func TestUserServiceErrors_Status(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		run      func(t *testing.T, svc *UserService, store *memStore, userID uuid.UUID) error
		target   any
		expected int
	}{
		{
			name: "register existing email",
			run: func(_ *testing.T, svc *UserService, _ *memStore, _ uuid.UUID) error {
				_, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Again", Email: "jordan@example.com", Password: "password123"})
				return err
			},
			target:   new(*ErrEmailAlreadyExists),
			expected: http.StatusConflict,
		},
		{
			name: "login wrong password",
			run: func(_ *testing.T, svc *UserService, _ *memStore, _ uuid.UUID) error {
				_, err := svc.Login(ctx, &types.LoginRequest{Email: "jordan@example.com", Password: "wrong-password"})
				return err
			},
			target:   new(*ErrInvalidCredentials),
			expected: http.StatusUnauthorized,
		},
		{
			name: "change password with wrong current",
			run: func(_ *testing.T, svc *UserService, _ *memStore, userID uuid.UUID) error {
				return svc.UpdatePassword(ctx, userID, "wrong-password", "new-password-1")
			},
			target:   new(*ErrPasswordMismatch),
			expected: http.StatusUnauthorized,
		},
		{
			name: "change password to the same value",
			run: func(_ *testing.T, svc *UserService, _ *memStore, userID uuid.UUID) error {
				return svc.UpdatePassword(ctx, userID, "password123", "password123")
			},
			target:   new(*ErrValidation),
			expected: http.StatusBadRequest,
		},
		{
			name: "change password for unknown user",
			run: func(_ *testing.T, svc *UserService, _ *memStore, _ uuid.UUID) error {
				return svc.UpdatePassword(ctx, uuid.New(), "password123", "new-password-1")
			},
			target:   new(*ErrUserNotFound),
			expected: http.StatusNotFound,
		},
		{
			name: "profile for unknown user",
			run: func(_ *testing.T, svc *UserService, _ *memStore, _ uuid.UUID) error {
				_, err := svc.GetProfile(ctx, uuid.New())
				return err
			},
			target:   new(*ErrUserNotFound),
			expected: http.StatusNotFound,
		},
		{
			name: "store failure while changing password",
			run: func(_ *testing.T, svc *UserService, store *memStore, userID uuid.UUID) error {
				store.failUsers = true
				return svc.UpdatePassword(ctx, userID, "password123", "new-password-1")
			},
			target:   &errStoreDown,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			svc := newTestUserService(store)
			user, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Jordan", Email: "jordan@example.com", Password: "password123"})
			require.NoError(t, err)

			err = tt.run(t, svc, store, user.ID)
			require.Error(t, err)
			if target, ok := tt.target.(*error); ok {
				assert.ErrorIs(t, err, *target)
			} else {
				assert.ErrorAs(t, err, tt.target)
			}
			assert.Equal(t, tt.expected, HTTPStatus(err))
		})
	}
}

func TestAuthHandler_UpdatePassword_ErrorResponses(t *testing.T) {
	store := newMemStore()
	s := newTestServer(t, store)
	token, _ := register(t, s, "jordan@example.com")

	w := do(t, s, http.MethodPut, "/me/password", token, types.UpdatePasswordRequest{
		CurrentPassword: "password123", NewPassword: "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must differ from the current password")

	store.failUsers = true
	w = do(t, s, http.MethodPut, "/me/password", token, types.UpdatePasswordRequest{
		CurrentPassword: "password123", NewPassword: "new-password-1",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), errStoreDown.Error())
}
