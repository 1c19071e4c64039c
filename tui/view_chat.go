// view_chat.go is the conversation panel.
//
// It owns the chat session. Questions are sent asynchronously via a
// tea.Cmd; the UI remains responsive while waiting for the agent and a
// second submission is ignored until the reply lands.
package tui

import (
	"context"
	"strings"

	"github.com/DachengChen/askdb/chat"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadingText is shown while a request is in flight.
const LoadingText = "Processing Database Query..."

const inputCharLimit = 2000

// ChatView shows the conversation and the question input.
type ChatView struct {
	session  *chat.Session
	asker    chat.Asker
	input    textinput.Model
	spinner  spinner.Model
	viewport *Viewport
	width    int
	height   int
}

func NewChatView(asker chat.Asker) *ChatView {
	input := textinput.New()
	input.Placeholder = "Ask about your data..."
	input.Prompt = ""
	input.CharLimit = inputCharLimit
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StylePrompt

	v := &ChatView{
		session:  chat.NewSession(),
		asker:    asker,
		input:    input,
		spinner:  sp,
		viewport: NewViewport(80, 20),
	}
	v.refresh()
	return v
}

func (v *ChatView) Name() string { return "Chat" }

// Session exposes the conversation state.
func (v *ChatView) Session() *chat.Session { return v.session }

// Loading reports whether a request is in flight.
func (v *ChatView) Loading() bool { return v.session.Loading() }

func (v *ChatView) SetSize(width, height int) {
	v.width = width
	v.height = height
	// status line + prompt line + scroll indicator
	v.viewport.SetSize(width, height-3)
	v.input.Width = width - lipgloss.Width(v.promptLabel()) - lipgloss.Width(v.button()) - 2
	v.refresh()
	v.viewport.End()
}

func (v *ChatView) ShortHelp() []KeyBinding {
	return []KeyBinding{
		{Key: "Enter", Desc: "run"},
		{Key: "Ctrl+L", Desc: "reset"},
		{Key: "PgUp/PgDn", Desc: "scroll"},
	}
}

func (v *ChatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *ChatView) Focus() tea.Cmd {
	return v.input.Focus()
}

func (v *ChatView) Blur() {
	v.input.Blur()
}

func (v *ChatView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case ChatResponseMsg:
		v.session.Complete(msg.Payload, msg.Err)
		v.refresh()
		v.viewport.End()
		return v, nil

	case spinner.TickMsg:
		if !v.session.Loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *ChatView) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return v, v.Dispatch("")
	case "ctrl+l":
		v.session.Reset()
		v.input.Reset()
		v.refresh()
		v.viewport.Home()
		return v, nil
	case "ctrl+k", "up":
		v.viewport.ScrollUp(1)
		return v, nil
	case "ctrl+j", "down":
		v.viewport.ScrollDown(1)
		return v, nil
	case "pgup":
		v.viewport.PageUp()
		return v, nil
	case "pgdown":
		v.viewport.PageDown()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.session.SetInput(v.input.Value())
	return v, cmd
}

// Dispatch submits override, or the typed input when override is empty.
// Returns nil when the submission is ignored.
func (v *ChatView) Dispatch(override string) tea.Cmd {
	v.session.SetInput(v.input.Value())
	question, ok := v.session.Send(override)
	if !ok {
		return nil
	}
	v.input.Reset()
	v.refresh()
	v.viewport.End()

	return tea.Batch(v.spinner.Tick, v.ask(question))
}

func (v *ChatView) ask(question string) tea.Cmd {
	asker := v.asker
	return func() tea.Msg {
		p, err := asker.Ask(context.Background(), question)
		return ChatResponseMsg{Payload: p, Err: err}
	}
}

func (v *ChatView) refresh() {
	v.viewport.SetContent(RenderConversation(v.session.Messages(), v.viewport.Width()))
}

func (v *ChatView) promptLabel() string {
	return StylePrompt.Render("Ask› ")
}

func (v *ChatView) button() string {
	if v.session.Loading() {
		return StyleButtonBusy.Render("...")
	}
	return StyleButton.Render("Run")
}

func (v *ChatView) View() string {
	status := ""
	if v.session.Loading() {
		status = v.spinner.View() + " " + StyleDimmed.Render(LoadingText)
	}

	prompt := v.promptLabel() + v.input.View()
	gap := v.width - lipgloss.Width(prompt) - lipgloss.Width(v.button())
	if gap < 1 {
		gap = 1
	}
	prompt += strings.Repeat(" ", gap) + v.button()

	return lipgloss.JoinVertical(lipgloss.Left, v.viewport.Render(), status, prompt)
}
