package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Conversation roles carried over the chat endpoint.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of conversation history sent to the provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Stream delivers the assistant response incrementally. Next returns the next
// text chunk, or io.EOF once the response is complete.
type Stream interface {
	Next() (string, error)
}

// Client is an abstraction over LLM providers
type Client interface {
	// StreamChat sends the system prompt and conversation history to the
	// provider and returns a stream of response chunks. The final message
	// must be a user turn.
	StreamChat(ctx context.Context, system string, messages []Message) (Stream, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// StreamChat opens a chat session with the prior turns as history and streams
// the model's response to the latest user message.
func (c *GeminiClient) StreamChat(ctx context.Context, system string, messages []Message) (Stream, error) {
	history, last, err := splitHistory(messages)
	if err != nil {
		return nil, err
	}

	model := c.client.GenerativeModel(c.config.ChatModel)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	cs := model.StartChat()
	cs.History = history

	iter := cs.SendMessageStream(ctx, genai.Text(last))
	return &geminiStream{iter: iter}, nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// geminiStream adapts the Gemini response iterator to the Stream interface.
type geminiStream struct {
	iter *genai.GenerateContentResponseIterator
}

func (s *geminiStream) Next() (string, error) {
	resp, err := s.iter.Next()
	if err != nil {
		if errors.Is(err, iterator.Done) {
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read response stream: %w", err)
	}
	return extractTextFromResponse(resp)
}

// splitHistory converts all but the final message into provider history and
// returns the final user message content separately.
func splitHistory(messages []Message) ([]*genai.Content, string, error) {
	if len(messages) == 0 {
		return nil, "", fmt.Errorf("no messages provided")
	}

	last := messages[len(messages)-1]
	if last.Role != RoleUser {
		return nil, "", fmt.Errorf("last message must have role %q, got %q", RoleUser, last.Role)
	}

	history := make([]*genai.Content, 0, len(messages)-1)
	for _, m := range messages[:len(messages)-1] {
		role, err := providerRole(m.Role)
		if err != nil {
			return nil, "", err
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	return history, last.Content, nil
}

// providerRole maps conversation roles onto the Gemini role vocabulary.
func providerRole(role string) (string, error) {
	switch role {
	case RoleUser:
		return "user", nil
	case RoleAssistant:
		return "model", nil
	default:
		return "", fmt.Errorf("unsupported message role %q", role)
	}
}

// extractTextFromResponse extracts text from a Gemini API response chunk
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
