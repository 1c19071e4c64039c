// render.go turns chat messages into styled terminal blocks.
//
// User messages are right-aligned indigo bubbles. Assistant messages are
// bordered boxes holding the text and, when the payload carries chart
// data, a bar chart and/or pie chart underneath.
package tui

import (
	"strings"

	"github.com/DachengChen/askdb/chart"
	"github.com/DachengChen/askdb/chat"
	"github.com/charmbracelet/lipgloss"
)

// Role labels shown above each message.
const (
	LabelRequest  = "Request"
	LabelAnalysis = "Analysis Result"
)

// minRenderWidth keeps bubbles legible in very narrow terminals.
const minRenderWidth = 24

// RenderMessage renders one message to fit in width columns.
func RenderMessage(msg chat.Message, width int) string {
	if width < minRenderWidth {
		width = minRenderWidth
	}
	if msg.Role == chat.RoleUser {
		return renderUser(msg, width)
	}
	return renderAssistant(msg, width)
}

// RenderConversation renders every message separated by a blank line.
func RenderConversation(msgs []chat.Message, width int) string {
	blocks := make([]string, len(msgs))
	for i, m := range msgs {
		blocks[i] = RenderMessage(m, width)
	}
	return strings.Join(blocks, "\n\n")
}

func renderUser(msg chat.Message, width int) string {
	maxW := width * 4 / 5
	bubble := StyleUserBubble
	if lipgloss.Width(msg.Content)+bubble.GetHorizontalFrameSize() > maxW {
		bubble = bubble.Width(maxW)
	}
	block := lipgloss.JoinVertical(lipgloss.Right,
		StyleRoleLabel.Render(LabelRequest),
		bubble.Render(msg.Content),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
}

func renderAssistant(msg chat.Message, width int) string {
	box := StyleAssistantBox
	if msg.Payload == nil && msg.Content == chat.ConnectionErrorText {
		box = StyleErrorBox
	}
	// Width in lipgloss excludes the border but includes padding.
	inner := width - box.GetHorizontalBorderSize()
	contentW := inner - box.GetHorizontalPadding()

	sections := []string{lipgloss.NewStyle().Width(contentW).Render(msg.Content)}
	if msg.Payload.HasBarChart() {
		sections = append(sections, "", chart.RenderBar(msg.Payload.BarChart, contentW))
	}
	if msg.Payload.HasPieChart() {
		sections = append(sections, "", chart.RenderPie(msg.Payload.PieChart, contentW))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		StyleRoleLabel.Render(LabelAnalysis),
		box.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, sections...)),
	)
}
