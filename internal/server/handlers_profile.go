package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/types"
)

const (
	defaultScoreHistory = 20
	maxScoreHistory     = 50
)

var profileValidator = validator.New()

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := s.users.GetProfile(r.Context(), userID)
	if err != nil {
		s.serviceError(w, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := profileValidator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	profile, err := s.users.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		s.serviceError(w, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleListScores returns the caller's most recent score history.
func (s *Server) handleListScores(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := defaultScoreHistory
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxScoreHistory)
	}

	records := []db.ScoreRecord{}
	if s.scores != nil {
		records, err = s.scores.ListResumeScores(r.Context(), userID, limit)
		if err != nil {
			s.internalError(w, "list scores", err)
			return
		}
		if records == nil {
			records = []db.ScoreRecord{}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"scores": records})
}

// serviceError writes the status mapped from a user service error.
func (s *Server) serviceError(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.internalError(w, op, err)
		return
	}
	writeError(w, status, err.Error())
}
