//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: CreateUserRequest{
				Name:     "Jordan Lee",
				Email:    "jordan@example.com",
				Password: "password123",
			},
			wantErr: false,
		},
		{
			name: "missing name",
			request: CreateUserRequest{
				Email:    "jordan@example.com",
				Password: "password123",
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "invalid email format",
			request: CreateUserRequest{
				Name:     "Jordan Lee",
				Email:    "not-an-email",
				Password: "password123",
			},
			wantErr: true,
			errMsg:  "email",
		},
		{
			name: "password too short",
			request: CreateUserRequest{
				Name:     "Jordan Lee",
				Email:    "jordan@example.com",
				Password: "short",
			},
			wantErr: true,
			errMsg:  "min",
		},
		{
			name: "password longer than bcrypt accepts",
			request: CreateUserRequest{
				Name:     "Jordan Lee",
				Email:    "jordan@example.com",
				Password: strings.Repeat("p", 73),
			},
			wantErr: true,
			errMsg:  "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validation(t *testing.T) {
	valid := LoginRequest{Email: "jordan@example.com", Password: "x"}
	assert.NoError(t, valid.Validate())

	missing := LoginRequest{Email: "jordan@example.com"}
	assert.Error(t, missing.Validate())
}

func TestUpdatePasswordRequest_Validation(t *testing.T) {
	validate := validator.New()

	assert.NoError(t, validate.Struct(UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "password123"}))
	assert.Error(t, validate.Struct(UpdatePasswordRequest{NewPassword: "password123"}))
	assert.Error(t, validate.Struct(UpdatePasswordRequest{CurrentPassword: "old", NewPassword: "short"}))
}

func TestUpdateProfileRequest_Validation(t *testing.T) {
	validate := validator.New()

	ok := UpdateProfileRequest{Headline: "Backend engineer", Skills: []string{"go", "postgresql"}}
	assert.NoError(t, validate.Struct(ok))

	emptySkill := UpdateProfileRequest{Skills: []string{"go", ""}}
	assert.Error(t, validate.Struct(emptySkill))
}

func TestScoreResult_OmitsCoverageWithoutJobDescription(t *testing.T) {
	result := ScoreResult{Score: 40, Bullets: 2, Metrics: 1, Suggestions: []string{}}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "keyword_coverage")

	coverage := 80
	result.KeywordCoverage = &coverage
	data, err = json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"keyword_coverage":80`)
}

func TestResumeFeatures_HasJobDescription(t *testing.T) {
	assert.False(t, ResumeFeatures{Coverage: 0.5}.HasJobDescription())
	assert.True(t, ResumeFeatures{KeywordCount: 3}.HasJobDescription())
}
