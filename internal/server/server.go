package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/career-coach/internal/ats"
	"github.com/jonathan/career-coach/internal/cache"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/ranking"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/jonathan/career-coach/internal/skills"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// Deps are the collaborators the server is built from.
type Deps struct {
	Users  db.UserStore
	Jobs   db.JobStore
	Scores db.ScoreStore
	// Cache may be nil, which disables search result caching.
	Cache *cache.Cache

	Scorer    *ats.Scorer
	Matcher   *ranking.Matcher
	Search    *ranking.SearchRanker
	Suggester *skills.Suggester

	JWT       *config.JWTConfig
	Passwords *config.PasswordConfig
	RateLimit *ratelimit.Config

	SearchLimits          config.LimitConfig
	RecommendationsLimits config.LimitConfig

	Log *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port int
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	log         *zap.Logger
	rateLimiter *ratelimit.Limiter

	users     *UserService
	jobs      db.JobStore
	scores    db.ScoreStore
	cache     *cache.Cache
	scorer    *ats.Scorer
	matcher   *ranking.Matcher
	search    *ranking.SearchRanker
	suggester *skills.Suggester

	searchLimits          config.LimitConfig
	recommendationsLimits config.LimitConfig
	suggestLimits         config.LimitConfig

	authHandler *AuthHandler
}

// New creates a new server instance and registers its routes.
func New(cfg Config, deps Deps) *Server {
	log := logger.OrNop(deps.Log)

	s := &Server{
		log:                   log,
		rateLimiter:           ratelimit.NewLimiter(deps.RateLimit),
		users:                 NewUserService(deps.Users, deps.Passwords),
		jobs:                  deps.Jobs,
		scores:                deps.Scores,
		cache:                 deps.Cache,
		scorer:                deps.Scorer,
		matcher:               deps.Matcher,
		search:                deps.Search,
		suggester:             deps.Suggester,
		searchLimits:          deps.SearchLimits,
		recommendationsLimits: deps.RecommendationsLimits,
		suggestLimits:         config.LimitConfig{DefaultLimit: skills.DefaultSuggestLimit, MaxLimit: 50},
	}
	if s.scorer == nil {
		s.scorer = ats.NewScorer(ats.DefaultModel())
	}
	if s.matcher == nil {
		s.matcher = ranking.NewMatcher(skills.DefaultTagWeights())
	}
	if s.search == nil {
		s.search = ranking.NewSearchRanker()
	}
	if s.suggester == nil {
		s.suggester = skills.NewSuggester()
	}

	jwtService := NewJWTService(deps.JWT)
	s.authHandler = NewAuthHandler(s.users, jwtService, log)
	auth := middleware.AuthMiddleware(jwtService.AsTokenValidator(), log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Profile
	mux.Handle("GET /me/profile", auth(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("PUT /me/profile", auth(http.HandlerFunc(s.handleUpdateProfile)))
	mux.Handle("PUT /me/password", auth(http.HandlerFunc(s.authHandler.UpdatePassword)))
	mux.Handle("GET /me/scores", auth(http.HandlerFunc(s.handleListScores)))

	// Scoring
	mux.Handle("POST /ats/score", auth(http.HandlerFunc(s.handleATSScore)))
	mux.Handle("POST /resume/score", auth(http.HandlerFunc(s.handleResumeScore)))

	// Jobs and search
	mux.Handle("GET /jobs/recommendations", auth(http.HandlerFunc(s.handleRecommendations)))
	mux.HandleFunc("POST /search/jobs", s.handleSearchJobs)
	mux.HandleFunc("POST /search/skills-suggest", s.handleSkillsSuggest)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over the client's budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// internalError logs err and writes a generic 500.
func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op+" failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// extractClientID returns the client IP from RemoteAddr. Forwarded headers are not
// trusted.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Warn("rate limit exceeded",
		zap.String("client", extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)
	writeJSON(w, http.StatusTooManyRequests, response)
}
