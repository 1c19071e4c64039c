// Package chat holds the conversation model shared by the terminal
// client and the reference agent backend.
//
// A conversation is an ordered list of messages. Assistant messages may
// carry a Payload with chart series returned by the agent. Messages are
// in-memory only and are never persisted.
package chat

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Fixed texts shown in the conversation.
const (
	GreetingText        = "Connected to your database. Ask me anything about your data — I can generate insights, charts, and summaries."
	FallbackText        = "Here is the result"
	ConnectionErrorText = "Backend connection error."
)

// SuggestedQueries are the example questions offered next to the chat.
var SuggestedQueries = []string{
	"Top 5 customers in December",
	"Sales by category",
	"Monthly revenue chart",
	"Top products",
}

// Message is a single chat entry. It is not modified after it has been
// appended to a Session.
type Message struct {
	Role    Role
	Content string
	Payload *Payload
}

// Payload is the structured reply produced by the database agent.
type Payload struct {
	Text     string    `json:"text,omitempty"`
	BarChart *BarChart `json:"barchart,omitempty"`
	PieChart *PieChart `json:"piechart,omitempty"`
}

// BarChart is a labelled series with optional axis captions.
// Labels and Values are expected to have the same length but this is
// not enforced.
type BarChart struct {
	Labels Labels `json:"labels"`
	Values Series `json:"values"`
	XLabel string `json:"xLabel,omitempty"`
	YLabel string `json:"yLabel,omitempty"`
}

// PieChart is a labelled series rendered as proportional slices.
type PieChart struct {
	Labels Labels `json:"labels"`
	Values Series `json:"values"`
}

// HasBarChart reports whether the payload carries a bar chart with at
// least one label.
func (p *Payload) HasBarChart() bool {
	return p != nil && p.BarChart != nil && len(p.BarChart.Labels) > 0
}

// HasPieChart reports whether the payload carries a pie chart with at
// least one label.
func (p *Payload) HasPieChart() bool {
	return p != nil && p.PieChart != nil && len(p.PieChart.Labels) > 0
}

// HasCharts reports whether any chart block should be rendered.
func (p *Payload) HasCharts() bool {
	return p.HasBarChart() || p.HasPieChart()
}
