package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

// decodeScoreRequest reads a scoring request, writing a 400 for bad bodies or a blank resume.
func decodeScoreRequest(w http.ResponseWriter, r *http.Request) (*types.ScoreRequest, bool) {
	var req types.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		writeError(w, http.StatusBadRequest, "resume_text required")
		return nil, false
	}
	return &req, true
}

// handleATSScore scores a resume without touching any stored state.
func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScoreRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.scorer.Score(req.ResumeText, req.JobDescription))
}

// handleResumeScore scores a resume, folds its skills into the caller's profile and
// records the result. Profile and history writes never fail the request.
func (s *Server) handleResumeScore(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	req, ok := decodeScoreRequest(w, r)
	if !ok {
		return
	}

	result := s.scorer.Score(req.ResumeText, req.JobDescription)
	log := s.log.With(zap.String("user_id", userID.String()))

	if _, err := s.users.AbsorbResume(r.Context(), userID, req.ResumeText); err != nil {
		log.Warn("failed to update profile from resume",
			zap.String("resume", logger.TruncateForLog(req.ResumeText, 80)),
			zap.Error(err))
	}
	if s.scores != nil {
		if _, err := s.scores.SaveResumeScore(r.Context(), db.NewScoreRecord(userID, result)); err != nil {
			log.Warn("failed to record resume score", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, result)
}
