// messages.go defines Bubble Tea messages used for async communication.
//
// The agent request runs in a tea.Cmd goroutine and reports back via
// ChatResponseMsg, so the UI never blocks while the backend works.
package tui

import (
	"github.com/DachengChen/askdb/chat"
)

// ChatResponseMsg is sent when the agent request completes.
type ChatResponseMsg struct {
	Payload *chat.Payload
	Err     error
}

// SuggestionMsg is sent when a suggested query is chosen in the sidebar.
type SuggestionMsg struct {
	Query string
}
