package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/types"
	"golang.org/x/sync/errgroup"
)

const noJobsNote = "No jobs found. Seed the database to see recommendations."

// recommendationsResponse is the body of GET /jobs/recommendations.
type recommendationsResponse struct {
	Jobs []types.ScoredJob `json:"jobs"`
	Note string            `json:"note,omitempty"`
}

// handleRecommendations ranks stored jobs against the caller's profile skills.
// The optional q narrows candidates by substring before ranking.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := r.URL.Query()
	requested := 0
	if raw := query.Get("limit"); raw != "" {
		requested, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}
	limit := s.recommendationsLimits.Clamp(requested)
	filter := db.JobFilter{
		Contains: strings.TrimSpace(query.Get("q")),
		Limit:    s.recommendationsLimits.CandidateLimit,
	}

	var (
		profile *types.Profile
		jobs    []types.JobRecord
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		p, err := s.users.GetProfile(ctx, userID)
		profile = p
		return err
	})
	g.Go(func() error {
		if s.jobs == nil {
			return nil
		}
		j, err := s.jobs.ListJobs(ctx, filter)
		jobs = j
		return err
	})
	if err := g.Wait(); err != nil {
		s.serviceError(w, "recommendations", err)
		return
	}

	if len(jobs) == 0 {
		resp := recommendationsResponse{Jobs: []types.ScoredJob{}}
		// An unfiltered empty listing means the store itself is empty.
		if filter.Contains == "" {
			resp.Note = noJobsNote
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{Jobs: s.matcher.RankJobs(jobs, profile.Skills, limit)})
}
