package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/server/middleware"
)

// SaveResumeRequest is the payload for PUT /resume. All sections are written;
// omitted fields clear their section.
type SaveResumeRequest struct {
	Skills     string            `json:"skills"`
	Projects   string            `json:"projects"`
	Other      string            `json:"other"`
	Experience db.ExperienceList `json:"experience"`
}

// UpdateSectionRequest is the payload for PUT /resume/sections/{section}.
type UpdateSectionRequest struct {
	Content string `json:"content"`
}

// UpdateExperienceRequest is the payload for PUT /resume/experience.
type UpdateExperienceRequest struct {
	Experience db.ExperienceList `json:"experience"`
}

// failedSection is one entry of the failed_sections response field.
type failedSection struct {
	Section string `json:"section"`
	Error   string `json:"error"`
}

// handleGetResume returns the user's resume, zero-valued if never saved.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resume, err := s.store.GetResume(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleSaveResume writes all sections concurrently. Sections that fail are
// reported in failed_sections; a partial save is a 207, not a rollback.
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SaveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resume := &db.Resume{
		ID:         userID,
		Skills:     req.Skills,
		Projects:   req.Projects,
		Other:      req.Other,
		Experience: req.Experience,
	}

	failed := s.store.SaveResume(r.Context(), userID, resume)
	if len(failed) == 0 {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"status":          "saved",
			"failed_sections": []failedSection{},
		})
		return
	}

	sections := make([]failedSection, 0, len(failed))
	for _, f := range failed {
		sections = append(sections, failedSection{Section: f.Section, Error: f.Message()})
	}
	s.jsonResponse(w, http.StatusMultiStatus, map[string]any{
		"status":          "partial",
		"failed_sections": sections,
	})
}

// handleUpdateResumeSection upserts one free-text section.
func (s *Server) handleUpdateResumeSection(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	section := r.PathValue("section")

	var req UpdateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.store.UpdateResumeSection(r.Context(), userID, section, req.Content); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleUpdateResumeExperience replaces the experience list atomically.
func (s *Server) handleUpdateResumeExperience(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.store.UpdateResumeExperience(r.Context(), userID, req.Experience); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}
