package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/llm"
)

// mockStore is an in-memory Store for handler tests. Setting failWith makes
// every operation return that error.
type mockStore struct {
	users      map[uuid.UUID]*db.User
	interviews map[uuid.UUID]db.Interview
	resumes    map[uuid.UUID]*db.Resume
	failWith   error
}

func newMockStore() *mockStore {
	return &mockStore{
		users:      make(map[uuid.UUID]*db.User),
		interviews: make(map[uuid.UUID]db.Interview),
		resumes:    make(map[uuid.UUID]*db.Resume),
	}
}

func (m *mockStore) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	if m.failWith != nil {
		return uuid.Nil, m.failWith
	}
	id := uuid.New()
	now := time.Now()
	m.users[id] = &db.User{ID: id, Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (m *mockStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.users[userID], nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	u, _ := m.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (m *mockStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if u, ok := m.users[userID]; ok {
		u.PasswordHash = passwordHash
		u.PasswordSet = true
	}
	return nil
}

func (m *mockStore) CreateInterview(_ context.Context, userID uuid.UUID, base db.BaseInterview) (uuid.UUID, error) {
	if m.failWith != nil {
		return uuid.Nil, m.failWith
	}
	if userID == uuid.Nil {
		return uuid.Nil, db.ErrAuthRequired
	}
	id := uuid.New()
	m.interviews[id] = db.Interview{ID: id, BaseInterview: base}
	return id, nil
}

func (m *mockStore) ListInterviews(_ context.Context, userID uuid.UUID) ([]db.Interview, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if userID == uuid.Nil {
		return nil, db.ErrAuthRequired
	}
	out := make([]db.Interview, 0, len(m.interviews))
	for _, iv := range m.interviews {
		out = append(out, iv)
	}
	return out, nil
}

func (m *mockStore) GetInterviewByID(_ context.Context, userID, interviewID uuid.UUID) (*db.Interview, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	iv, ok := m.interviews[interviewID]
	if !ok {
		return nil, &db.ErrInterviewNotFound{InterviewID: interviewID}
	}
	return &iv, nil
}

func (m *mockStore) GetResume(_ context.Context, userID uuid.UUID) (*db.Resume, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if res, ok := m.resumes[userID]; ok {
		return res, nil
	}
	return db.NewResume(userID), nil
}

func (m *mockStore) UpdateResumeSection(_ context.Context, userID uuid.UUID, section, content string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if !db.ValidSection(section) {
		return &db.ErrInvalidSection{Section: section}
	}
	res := m.resumeFor(userID)
	switch section {
	case db.SectionSkills:
		res.Skills = content
	case db.SectionProjects:
		res.Projects = content
	case db.SectionOther:
		res.Other = content
	}
	return nil
}

func (m *mockStore) UpdateResumeExperience(_ context.Context, userID uuid.UUID, experience db.ExperienceList) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.resumeFor(userID).Experience = experience.Compact()
	return nil
}

func (m *mockStore) SaveResume(ctx context.Context, userID uuid.UUID, res *db.Resume) []db.SectionError {
	var failed []db.SectionError
	for section, content := range map[string]string{
		db.SectionSkills:   res.Skills,
		db.SectionProjects: res.Projects,
		db.SectionOther:    res.Other,
	} {
		if err := m.UpdateResumeSection(ctx, userID, section, content); err != nil {
			failed = append(failed, db.SectionError{Section: section, Err: err})
		}
	}
	if err := m.UpdateResumeExperience(ctx, userID, res.Experience); err != nil {
		failed = append(failed, db.SectionError{Section: "experience", Err: err})
	}
	return failed
}

func (m *mockStore) resumeFor(userID uuid.UUID) *db.Resume {
	if res, ok := m.resumes[userID]; ok {
		return res
	}
	res := db.NewResume(userID)
	m.resumes[userID] = res
	return res
}

func (m *mockStore) Close() {}

// scriptedStream yields the configured chunks, then failErr or io.EOF.
type scriptedStream struct {
	chunks  []string
	failErr error
	pos     int
}

func (s *scriptedStream) Next() (string, error) {
	if s.pos < len(s.chunks) {
		chunk := s.chunks[s.pos]
		s.pos++
		return chunk, nil
	}
	if s.failErr != nil {
		return "", s.failErr
	}
	return "", io.EOF
}

// mockLLM records the last StreamChat call and returns a scripted stream.
type mockLLM struct {
	chunks     []string
	openErr    error
	streamErr  error
	lastSystem string
	lastMsgs   []llm.Message
}

func (m *mockLLM) StreamChat(_ context.Context, system string, messages []llm.Message) (llm.Stream, error) {
	m.lastSystem = system
	m.lastMsgs = messages
	if m.openErr != nil {
		return nil, m.openErr
	}
	return &scriptedStream{chunks: m.chunks, failErr: m.streamErr}, nil
}

func (m *mockLLM) Close() error { return nil }

// testServer bundles a Server wired to mocks with its route handler.
type testServer struct {
	*Server
	store   *mockStore
	llmMock *mockLLM
	handler http.Handler
}

func newTestServer() *testServer {
	store := newMockStore()
	llmMock := &mockLLM{chunks: []string{"hello"}}

	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	userService := NewUserService(store, &config.PasswordConfig{BcryptCost: 10})

	s := &Server{
		store:         store,
		llm:           llmMock,
		streamTimeout: time.Second,
		jwtService:    jwtService,
		userService:   userService,
		authHandler:   NewAuthHandler(userService, jwtService),
	}

	return &testServer{
		Server:  s,
		store:   store,
		llmMock: llmMock,
		handler: s.routes(),
	}
}
