// Package session coordinates one interview-prep conversation: it loads the
// user's interview and resume records, derives the system prompt, and drives
// streamed turn exchanges with the relay.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/composer"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/llm"
	"golang.org/x/sync/errgroup"
)

// State identifies where the session is in its lifecycle.
type State string

// Session lifecycle states.
const (
	StateIdle              State = "idle"
	StateLoadingContext    State = "loading_context"
	StateReady             State = "ready"
	StateAwaitingResponse  State = "awaiting_response"
	StateContextLoadFailed State = "context_load_failed"
	StateSendFailed        State = "send_failed"
)

// Errors surfaced to the caller for rejected actions.
var (
	// ErrEmptyInput rejects blank or whitespace-only submissions.
	ErrEmptyInput = errors.New("input is empty")
	// ErrBusy rejects a submit while a response is already in flight.
	ErrBusy = errors.New("a response is already in flight")
	// ErrNotReady rejects a submit before the session has been opened.
	ErrNotReady = errors.New("session context has not been loaded")
	// ErrAlreadyOpen rejects a second Open on a live session.
	ErrAlreadyOpen = errors.New("session is already open")
)

// Turn is one message in the conversation, in-memory for the session's lifetime.
type Turn struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContextStore supplies the records the system prompt is built from.
type ContextStore interface {
	GetInterviewByID(ctx context.Context, userID, interviewID uuid.UUID) (*db.Interview, error)
	GetResume(ctx context.Context, userID uuid.UUID) (*db.Resume, error)
}

// Relay forwards conversation history to the generative-text provider.
type Relay interface {
	StreamChat(ctx context.Context, system string, messages []llm.Message) (llm.Stream, error)
}

// Session is the conversation state machine. Methods are safe for use from a
// single caller; the mutex exists so a concurrent submit is rejected rather
// than interleaved.
type Session struct {
	store       ContextStore
	relay       Relay
	userID      uuid.UUID
	interviewID uuid.UUID
	now         func() time.Time

	mu           sync.Mutex
	state        State
	systemPrompt string
	turns        []Turn
}

// New creates an idle session for one user and interview.
func New(store ContextStore, relay Relay, userID, interviewID uuid.UUID) *Session {
	return &Session{
		store:       store,
		relay:       relay,
		userID:      userID,
		interviewID: interviewID,
		now:         time.Now,
		state:       StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SystemPrompt returns the prompt derived from the loaded records, or the
// default persona when context never loaded.
func (s *Session) SystemPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.systemPrompt == "" {
		return composer.DefaultPersona()
	}
	return s.systemPrompt
}

// Turns returns a copy of the visible conversation history.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Open fetches the interview and resume concurrently, joins both results, and
// builds the system prompt. A failed load leaves the session in
// StateContextLoadFailed; calling Open again retries.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle && s.state != StateContextLoadFailed {
		s.mu.Unlock()
		return ErrAlreadyOpen
	}
	s.state = StateLoadingContext
	s.mu.Unlock()

	var (
		interview *db.Interview
		resume    *db.Resume
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		interview, err = s.store.GetInterviewByID(gctx, s.userID, s.interviewID)
		return err
	})
	g.Go(func() error {
		var err error
		resume, err = s.store.GetResume(gctx, s.userID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.mu.Lock()
		s.state = StateContextLoadFailed
		s.mu.Unlock()
		return fmt.Errorf("failed to load session context: %w", err)
	}

	s.mu.Lock()
	s.systemPrompt = composer.BuildSystemPrompt(interview, resume)
	s.state = StateReady
	s.mu.Unlock()
	return nil
}

// Send submits a user turn and streams the assistant's reply. Each chunk is
// passed to onChunk as it arrives; the finalized assistant turn is returned on
// completion. On failure the partially built assistant turn is discarded while
// the user turn stays in history, so the user can resend.
func (s *Session) Send(ctx context.Context, input string, onChunk func(chunk string)) (*Turn, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}

	s.mu.Lock()
	switch s.state {
	case StateAwaitingResponse:
		s.mu.Unlock()
		return nil, ErrBusy
	case StateIdle, StateLoadingContext:
		s.mu.Unlock()
		return nil, ErrNotReady
	}

	s.turns = append(s.turns, Turn{
		ID:        uuid.New(),
		Role:      llm.RoleUser,
		Content:   trimmed,
		CreatedAt: s.now(),
	})
	s.state = StateAwaitingResponse

	system := s.systemPrompt
	if system == "" {
		// Context never loaded; degrade to the generic persona.
		system = composer.DefaultPersona()
	}
	messages := make([]llm.Message, len(s.turns))
	for i, turn := range s.turns {
		messages[i] = llm.Message{Role: turn.Role, Content: turn.Content}
	}
	s.mu.Unlock()

	stream, err := s.relay.StreamChat(ctx, system, messages)
	if err != nil {
		s.fail()
		return nil, fmt.Errorf("failed to open response stream: %w", err)
	}

	var content strings.Builder
	for {
		chunk, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.fail()
			return nil, fmt.Errorf("response stream failed: %w", err)
		}
		content.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	}

	turn := Turn{
		ID:        uuid.New(),
		Role:      llm.RoleAssistant,
		Content:   content.String(),
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.turns = append(s.turns, turn)
	s.state = StateReady
	s.mu.Unlock()
	return &turn, nil
}

// fail marks the last exchange as failed; the next Send retries from here.
func (s *Session) fail() {
	s.mu.Lock()
	s.state = StateSendFailed
	s.mu.Unlock()
}
