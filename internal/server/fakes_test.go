package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/ranking"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var errStoreDown = errors.New("store unavailable")

// memStore is an in-memory implementation of the user, job and score stores.
type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*db.User
	jobs      []types.JobRecord
	scores    []db.ScoreRecord
	failJobs  bool
	failSave  bool
	failUsers bool
	lastJobs  db.JobFilter
}

func newMemStore() *memStore {
	return &memStore{users: map[uuid.UUID]*db.User{}}
}

func (m *memStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	m.users[id] = &db.User{
		ID: id, Name: name, Email: email, PasswordHash: passwordHash,
		Role: db.RoleUser, Skills: []string{}, CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUsers {
		return nil, errStoreDown
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *memStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *memStore) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	u, err := m.GetUser(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}

func (m *memStore) UpdateProfile(_ context.Context, userID uuid.UUID, p types.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.Headline, u.Skills, u.ResumeText = p.Headline, p.Skills, p.ResumeText
	return nil
}

func (m *memStore) ListJobs(_ context.Context, filter db.JobFilter) ([]types.JobRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastJobs = filter
	if m.failJobs {
		return nil, errStoreDown
	}
	out := []types.JobRecord{}
	for _, j := range m.jobs {
		if filter.Contains != "" && !strings.Contains(strings.ToLower(j.Title+" "+j.Company+" "+j.Description+" "+strings.Join(j.Tags, " ")), strings.ToLower(filter.Contains)) {
			continue
		}
		out = append(out, j)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memStore) UpsertJob(_ context.Context, job types.JobRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	return true, nil
}

func (m *memStore) DeleteAllJobs(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.jobs))
	m.jobs = nil
	return n, nil
}

func (m *memStore) CountJobs(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs), nil
}

func (m *memStore) SaveResumeScore(_ context.Context, rec db.ScoreRecord) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return uuid.Nil, errStoreDown
	}
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	m.scores = append(m.scores, rec)
	return rec.ID, nil
}

func (m *memStore) ListResumeScores(_ context.Context, userID uuid.UUID, limit int) ([]db.ScoreRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.ScoreRecord{}
	for i := len(m.scores) - 1; i >= 0 && len(out) < limit; i-- {
		if m.scores[i].UserID == userID {
			out = append(out, m.scores[i])
		}
	}
	return out, nil
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: testSecret, ExpirationHours: 24, Issuer: "career-coach"}
}

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{BcryptCost: 10}
}

// newTestServer builds a server over an in-memory store with rate limiting disabled.
func newTestServer(t *testing.T, store *memStore) *Server {
	t.Helper()
	s := New(Config{Port: 0}, Deps{
		Users:                 store,
		Jobs:                  store,
		Scores:                store,
		Search:                ranking.NewSearchRankerWithClock(func() time.Time { return fixedNow }),
		JWT:                   testJWTConfig(),
		Passwords:             testPasswordConfig(),
		RateLimit:             &ratelimit.Config{Enabled: false},
		SearchLimits:          config.LimitConfig{CandidateLimit: 300, DefaultLimit: 30, MaxLimit: 50},
		RecommendationsLimits: config.LimitConfig{CandidateLimit: 300, DefaultLimit: 24, MaxLimit: 100},
		Log:                   zaptest.NewLogger(t),
	})
	t.Cleanup(s.Close)
	return s
}

// do sends a JSON request through the full handler chain.
func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its token and user.
func register(t *testing.T, s *Server, email string) (string, *types.User) {
	t.Helper()
	w := do(t, s, http.MethodPost, "/auth/register", "", types.CreateUserRequest{
		Name: "Jordan Lee", Email: email, Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
