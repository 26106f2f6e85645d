package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/interview-prep/internal/composer"
	"github.com/jonathan/interview-prep/internal/llm"
)

// ChatRequest is the payload for POST /chat. SystemPrompt is optional; an
// empty value falls back to the default assistant persona.
type ChatRequest struct {
	Messages     []llm.Message `json:"messages"`
	SystemPrompt string        `json:"systemPrompt,omitempty"`
}

// handleChat relays a conversation to the model provider and streams the
// response back as SSE chunk events terminated by a done event. Failures
// before the first chunk yield a plain 500; failures mid-stream emit one
// terminal error event.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	system := req.SystemPrompt
	if system == "" {
		system = composer.DefaultPersona()
	}

	// Bound the whole exchange; the deadline also propagates a client
	// disconnect to the provider through the request context.
	ctx, cancel := context.WithTimeout(r.Context(), s.streamTimeout)
	defer cancel()

	stream, err := s.llm.StreamChat(ctx, system, req.Messages)
	if err != nil {
		log.Printf("chat relay failed to open stream: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	for {
		chunk, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				sse.WriteDone()
				return
			}
			log.Printf("chat relay stream error: %v", err)
			sse.WriteError("stream failed")
			return
		}
		if err := sse.WriteChunk(chunk); err != nil {
			// Client went away; the deferred cancel stops the provider.
			return
		}
	}
}
