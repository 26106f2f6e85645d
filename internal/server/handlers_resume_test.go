package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/server/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResume_NeverSaved(t *testing.T) {
	ts := newTestServer()
	userID := uuid.New()

	req := authedRequest(t, ts, http.MethodGet, "/resume", nil, userID)
	w := httptest.NewRecorder()

	ts.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got db.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, userID, got.ID)
	assert.Empty(t, got.Skills)
	assert.NotNil(t, got.Experience)
	assert.Empty(t, got.Experience)
}

func TestSaveResume_AllSections(t *testing.T) {
	ts := newTestServer()
	userID := uuid.New()

	body, _ := json.Marshal(SaveResumeRequest{
		Skills:   "Go, SQL",
		Projects: "Inventory system",
		Other:    "Certified",
		Experience: db.ExperienceList{
			{ID: "e1", Position: "Intern", Description: "Wrote tests"},
			{ID: "e2"}, // blank, dropped on save
		},
	})
	req := authedRequest(t, ts, http.MethodPut, "/resume", body, userID)
	w := httptest.NewRecorder()

	ts.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status         string          `json:"status"`
		FailedSections []failedSection `json:"failed_sections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "saved", resp.Status)
	assert.Empty(t, resp.FailedSections)

	stored := ts.store.resumes[userID]
	require.NotNil(t, stored)
	assert.Equal(t, "Go, SQL", stored.Skills)
	require.Len(t, stored.Experience, 1)
	assert.Equal(t, "Intern", stored.Experience[0].Position)
}

func TestSaveResume_PartialFailure(t *testing.T) {
	ts := newTestServer()
	userID := uuid.New()

	// Replace the store-level save with one that fails a single section.
	ts.store.failWith = nil
	failing := &partialFailStore{mockStore: ts.store}
	ts.Server.store = failing
	handler := ts.Server.routes()

	body, _ := json.Marshal(SaveResumeRequest{Skills: "Go", Projects: "x", Other: "y"})
	req := authedRequest(t, ts, http.MethodPut, "/resume", body, userID)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusMultiStatus, w.Code)

	var resp struct {
		Status         string          `json:"status"`
		FailedSections []failedSection `json:"failed_sections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "partial", resp.Status)
	require.Len(t, resp.FailedSections, 1)
	assert.Equal(t, db.SectionProjects, resp.FailedSections[0].Section)
	assert.NotEmpty(t, resp.FailedSections[0].Error)
}

// partialFailStore fails the projects section of every save.
type partialFailStore struct {
	*mockStore
}

func (p *partialFailStore) SaveResume(ctx context.Context, userID uuid.UUID, res *db.Resume) []db.SectionError {
	return []db.SectionError{
		{Section: db.SectionProjects, Err: &db.ErrUnavailable{Op: "update resume projects", Err: assert.AnError}},
	}
}

func TestUpdateResumeSection(t *testing.T) {
	ts := newTestServer()
	userID := uuid.New()

	body, _ := json.Marshal(UpdateSectionRequest{Content: "Go, Postgres"})
	req := authedRequest(t, ts, http.MethodPut, "/resume/sections/skills", body, userID)
	w := httptest.NewRecorder()

	ts.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Go, Postgres", ts.store.resumes[userID].Skills)
}

func TestUpdateResumeSection_InvalidSection(t *testing.T) {
	ts := newTestServer()

	body, _ := json.Marshal(UpdateSectionRequest{Content: "anything"})
	req := httptest.NewRequest(http.MethodPut, "/resume/sections/education", bytes.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	req.SetPathValue("section", "education")
	w := httptest.NewRecorder()

	ts.handleUpdateResumeSection(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateResumeExperience_DropsBlankEntries(t *testing.T) {
	ts := newTestServer()
	userID := uuid.New()

	body, _ := json.Marshal(UpdateExperienceRequest{
		Experience: db.ExperienceList{
			{ID: "e1", Position: "Engineer", Description: "Shipped things"},
			{ID: "e2", Position: "  ", Description: ""},
		},
	})
	req := authedRequest(t, ts, http.MethodPut, "/resume/experience", body, userID)
	w := httptest.NewRecorder()

	ts.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, ts.store.resumes[userID].Experience, 1)
	assert.Equal(t, "e1", ts.store.resumes[userID].Experience[0].ID)
}

func TestResume_RequiresAuth(t *testing.T) {
	ts := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/resume", nil)
	w := httptest.NewRecorder()

	ts.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
