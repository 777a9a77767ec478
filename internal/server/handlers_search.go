package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/career-coach/internal/cache"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/parsing"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

func decodeSearchRequest(w http.ResponseWriter, r *http.Request) (*types.SearchRequest, bool) {
	var req types.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return &req, true
}

// handleSearchJobs ranks stored jobs for a free-text query. Results are cached per
// normalized query and result count.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearchRequest(w, r)
	if !ok {
		return
	}
	tokens := parsing.UniqueTokens(req.Q)
	if len(tokens) == 0 || s.jobs == nil {
		writeJSON(w, http.StatusOK, map[string]any{"hits": []types.ScoredJob{}})
		return
	}

	ctx := r.Context()
	k := s.searchLimits.Clamp(req.K)
	key := cache.Key("search", strings.Join(tokens, " "), strconv.Itoa(k))
	if hits, ok := cache.GetJSON[[]types.ScoredJob](ctx, s.cache, key); ok {
		writeJSON(w, http.StatusOK, map[string]any{"hits": hits})
		return
	}

	jobs, err := s.jobs.ListJobs(ctx, db.SearchFilter(req.Q, s.searchLimits.CandidateLimit))
	if err != nil {
		s.internalError(w, "search jobs", err)
		return
	}
	hits := s.search.RankScored(req.Q, jobs, k)
	cache.SetJSON(ctx, s.cache, key, hits)

	s.log.Debug("search",
		zap.String("query", logger.TruncateForLog(req.Q, 80)),
		zap.Int("candidates", len(jobs)),
		zap.Int("hits", len(hits)),
	)
	writeJSON(w, http.StatusOK, map[string]any{"hits": hits})
}

// handleSkillsSuggest returns the closest vocabulary skills to a partial query.
func (s *Server) handleSkillsSuggest(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearchRequest(w, r)
	if !ok {
		return
	}
	suggestions := s.suggester.Suggest(req.Q, s.suggestLimits.Clamp(req.K))
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
