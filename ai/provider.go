// Package ai defines the interface for the language models that drive
// the database agent.
//
// The agent makes two calls per question: one turns the question and
// the schema into SQL, the other turns the question and the query
// results into a chat payload. Both are plain completions, so a provider
// only needs to answer a system prompt plus a conversation.
package ai

import (
	"context"
)

// Message represents a chat message.
type Message struct {
	Role    string // "user", "assistant"
	Content string
}

// Provider is the interface all AI backends must implement.
type Provider interface {
	// Complete sends the system prompt and conversation and returns the
	// model's reply. Implementations use temperature 0.
	Complete(ctx context.Context, system string, messages []Message) (string, error)

	// Name returns the provider name for display.
	Name() string
}

// User wraps content in a single user message.
func User(content string) []Message {
	return []Message{{Role: "user", Content: content}}
}
