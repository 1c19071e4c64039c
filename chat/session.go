package chat

import (
	"context"
	"strings"
)

// Asker sends a question to the database agent.
type Asker interface {
	Ask(ctx context.Context, question string) (*Payload, error)
}

// Session is the chat state: the message list, the pending input text
// and whether a request is in flight.
//
// Session is not safe for concurrent use. The TUI owns it from the
// Bubble Tea update loop and only hands the question string to the
// goroutine performing the request.
type Session struct {
	messages []Message
	input    string
	loading  bool
}

// NewSession creates a session seeded with the greeting message.
func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Reset drops the conversation and restores the greeting.
// The loading flag is left untouched so an in-flight reply still lands.
func (s *Session) Reset() {
	s.messages = []Message{{Role: RoleAssistant, Content: GreetingText}}
	s.input = ""
}

// Messages returns a copy of the conversation.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages.
func (s *Session) Len() int { return len(s.messages) }

// Input returns the current input text.
func (s *Session) Input() string { return s.input }

// SetInput replaces the current input text.
func (s *Session) SetInput(text string) { s.input = text }

// Loading reports whether a request is in flight.
func (s *Session) Loading() bool { return s.loading }

// Send starts a submission. The override text (a suggested query) wins
// over the input field when non-empty. Blank text or an in-flight
// request makes Send a no-op and ok is false.
//
// On success the user message is appended as typed, the input is
// cleared and loading is set. The caller must eventually call Complete.
func (s *Session) Send(override string) (question string, ok bool) {
	text := override
	if text == "" {
		text = s.input
	}
	if strings.TrimSpace(text) == "" || s.loading {
		return "", false
	}

	s.messages = append(s.messages, Message{Role: RoleUser, Content: text})
	s.input = ""
	s.loading = true
	return text, true
}

// Complete appends the assistant reply for the pending request and
// clears the loading flag whatever the outcome.
func (s *Session) Complete(p *Payload, err error) Message {
	defer func() { s.loading = false }()

	var msg Message
	if err != nil {
		msg = Message{Role: RoleAssistant, Content: ConnectionErrorText}
	} else {
		if p == nil {
			p = &Payload{}
		}
		content := p.Text
		if content == "" {
			content = FallbackText
		}
		msg = Message{Role: RoleAssistant, Content: content, Payload: p}
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Dispatch runs a full submission synchronously: Send, Ask, Complete.
// It returns false when the submission was ignored.
func (s *Session) Dispatch(ctx context.Context, a Asker, override string) (Message, bool) {
	question, ok := s.Send(override)
	if !ok {
		return Message{}, false
	}
	p, err := a.Ask(ctx, question)
	return s.Complete(p, err), true
}
