// Package llm provides the generative-text provider client used by the chat relay.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultChatModel is the model used for interview prep conversations.
const DefaultChatModel = "gemini-2.0-flash"

// DefaultStreamTimeout bounds the wall-clock duration of one streamed exchange.
const DefaultStreamTimeout = 30 * time.Second

// Config holds the chat model configuration for the application
type Config struct {
	Provider      Provider
	ChatModel     string
	StreamTimeout time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:      ProviderGemini,
		ChatModel:     DefaultChatModel,
		StreamTimeout: DefaultStreamTimeout,
	}
}

// WithChatModel returns a copy of the config with a different chat model.
func (c *Config) WithChatModel(model string) *Config {
	out := *c
	if model != "" {
		out.ChatModel = model
	}
	return &out
}

// WithStreamTimeout returns a copy of the config with a different stream cap.
func (c *Config) WithStreamTimeout(d time.Duration) *Config {
	out := *c
	if d > 0 {
		out.StreamTimeout = d
	}
	return &out
}
