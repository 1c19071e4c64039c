// app.go is the top-level Bubble Tea model that lays out the panels.
//
// Layout: a header bar, the suggestion sidebar and the chat panel side
// by side inside rounded frames, and a help bar at the bottom.
//
// Key design decisions:
//   - Tab moves focus between sidebar and chat
//   - Alt+1..4 run a suggested query from anywhere
//   - Help overlay (F1, or ? outside the input) toggled on/off
package tui

import (
	"fmt"
	"strings"

	"github.com/DachengChen/askdb/chat"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const appVersion = "0.1.0"

// Header texts.
const (
	HeaderTitle  = "Database Agent"
	StatusOnline = "Agent Online"
)

// Panel indices.
const (
	PanelSidebar = iota
	PanelChat
)

const (
	sidebarWidth    = 32
	minSidebarWidth = 60 // terminals narrower than this hide the sidebar
)

// App is the root Bubble Tea model.
type App struct {
	chat    *ChatView
	suggest *SuggestView
	focus   int
	backend string

	width    int
	height   int
	showHelp bool
}

// NewApp creates the application with the chat panel focused.
func NewApp(asker chat.Asker, backend string) *App {
	a := &App{
		chat:    NewChatView(asker),
		suggest: NewSuggestView(DefaultSuggestions()),
		focus:   PanelChat,
		backend: backend,
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.chat.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case SuggestionMsg:
		return a, a.chat.Dispatch(msg.Query)
	}

	// Everything else (agent replies, spinner ticks, cursor blink)
	// belongs to the chat panel.
	_, cmd := a.chat.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return a, tea.Quit
	case "f1":
		a.showHelp = !a.showHelp
		return a, nil
	case "tab", "shift+tab":
		return a, a.toggleFocus()
	}

	if a.showHelp {
		if key == "esc" || key == "?" {
			a.showHelp = false
		}
		return a, nil
	}

	if strings.HasPrefix(key, "alt+") {
		var n int
		if _, err := fmt.Sscanf(key, "alt+%d", &n); err == nil && n >= 1 && n <= len(a.suggest.queries) {
			return a, a.chat.Dispatch(a.suggest.queries[n-1])
		}
	}

	if a.focus == PanelSidebar {
		if key == "?" {
			a.showHelp = true
			return a, nil
		}
		_, cmd := a.suggest.Update(msg)
		return a, cmd
	}

	_, cmd := a.chat.Update(msg)
	return a, cmd
}

func (a *App) toggleFocus() tea.Cmd {
	if !a.sidebarVisible() {
		return nil
	}
	if a.focus == PanelChat {
		a.focus = PanelSidebar
		a.chat.Blur()
		return a.suggest.Focus()
	}
	a.focus = PanelChat
	a.suggest.Blur()
	return a.chat.Focus()
}

func (a *App) sidebarVisible() bool {
	return a.width >= minSidebarWidth
}

// resize hands each panel its inner size.
// Chrome: header(1) + help bar(1) + frame borders(2).
func (a *App) resize() {
	innerH := a.height - 4
	if innerH < 3 {
		innerH = 3
	}
	chatW := a.width - 2
	if a.sidebarVisible() {
		a.suggest.SetSize(sidebarWidth-2, innerH)
		chatW = a.width - sidebarWidth - 2
	} else if a.focus == PanelSidebar {
		a.focus = PanelChat
		a.suggest.Blur()
		a.chat.Focus()
	}
	a.chat.SetSize(chatW, innerH)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	innerH := a.height - 4
	if innerH < 3 {
		innerH = 3
	}

	var body string
	if a.showHelp {
		body = StyleBorder.Width(a.width - 2).Height(innerH).Render(a.renderHelp())
	} else {
		chatFrame := a.frame(PanelChat).
			Width(a.width - 2).
			Height(innerH)
		if a.sidebarVisible() {
			chatFrame = chatFrame.Width(a.width - sidebarWidth - 2)
			side := a.frame(PanelSidebar).
				Width(sidebarWidth - 2).
				Height(innerH).
				Render(a.suggest.View())
			body = lipgloss.JoinHorizontal(lipgloss.Top, side, chatFrame.Render(a.chat.View()))
		} else {
			body = chatFrame.Render(a.chat.View())
		}
	}

	return a.renderHeader() + "\n" + body + "\n" + a.renderStatusBar()
}

func (a *App) frame(panel int) lipgloss.Style {
	if a.focus == panel {
		return StyleBorderFocused
	}
	return StyleBorder
}

// renderHeader draws: title + version, agent status, backend URL.
func (a *App) renderHeader() string {
	left := StyleBold.Render("◆ "+HeaderTitle) + StyleDimmed.Render(" v"+appVersion)

	status := StyleSuccess.Render("  ● " + StatusOnline)
	if a.chat.Loading() {
		status = StyleWarning.Render("  ● " + LoadingText)
	}
	content := left + status

	right := StyleDimmed.Render(a.backend)
	gap := a.width - lipgloss.Width(content) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		MaxWidth(a.width).
		Render(content + strings.Repeat(" ", gap) + right)
}

func (a *App) renderStatusBar() string {
	var parts []string
	for _, h := range a.helpItems() {
		parts = append(parts, StyleHelpKey.Render(h.Key)+" "+StyleHelpDesc.Render(h.Desc))
	}
	return StyleStatusBar.MaxWidth(a.width).Render(strings.Join(parts, "  │  "))
}

func (a *App) helpItems() []KeyBinding {
	var items []KeyBinding
	if a.focus == PanelSidebar {
		items = a.suggest.ShortHelp()
	} else {
		items = a.chat.ShortHelp()
	}
	global := []KeyBinding{
		{Key: "Tab", Desc: "focus"},
		{Key: "F1", Desc: "help"},
		{Key: "Ctrl+C", Desc: "quit"},
	}
	return append(items, global...)
}

func (a *App) renderHelp() string {
	help := []string{
		StyleTitle.Render("⌨ askdb Keyboard Shortcuts"),
		"",
		StyleHelpKey.Render("Enter") + "            Run the typed question",
		StyleHelpKey.Render("Alt+1…4") + "          Run a suggested query",
		StyleHelpKey.Render("Tab") + "              Switch between sidebar and chat",
		StyleHelpKey.Render("↑/↓") + "              Select suggestion (sidebar) or scroll (chat)",
		StyleHelpKey.Render("PgUp/PgDn") + "        Page up/down",
		StyleHelpKey.Render("Ctrl+K/J") + "         Scroll one line",
		StyleHelpKey.Render("Ctrl+L") + "           Reset the conversation",
		StyleHelpKey.Render("F1") + "               Toggle this help",
		StyleHelpKey.Render("Ctrl+C") + "           Quit",
		"",
		StyleDimmed.Render("Only one question runs at a time; new submissions are ignored until the reply lands."),
		"",
		StyleDimmed.Render("Press F1 or Esc to close"),
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(help, "\n"))
}
