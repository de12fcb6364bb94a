// Package ai provides the transport to the external natural-language planner.
// The core only ever sees the LLMService interface; everything about
// providers, retries, and timeouts stays behind it.
package ai

import (
	"context"
)

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// LLMService is the planner transport interface.
type LLMService interface {
	// Chat performs a synchronous completion and returns the raw reply text.
	Chat(ctx context.Context, messages []Message) (string, error)
}

// SystemPrompt creates a system message.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}
