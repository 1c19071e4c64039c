// view_suggest.go is the suggested-query sidebar.
//
// Choosing an entry emits a SuggestionMsg; the App routes it through the
// same dispatch path as typed input.
package tui

import (
	"fmt"
	"strings"

	"github.com/DachengChen/askdb/chat"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SuggestView lists the suggested queries.
type SuggestView struct {
	queries  []string
	selected int
	focused  bool
	width    int
	height   int
}

func NewSuggestView(queries []string) *SuggestView {
	return &SuggestView{queries: queries}
}

func (v *SuggestView) Name() string { return "Suggestions" }

func (v *SuggestView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *SuggestView) ShortHelp() []KeyBinding {
	return []KeyBinding{
		{Key: "↑/↓", Desc: "select"},
		{Key: "Enter", Desc: "run"},
	}
}

func (v *SuggestView) Init() tea.Cmd { return nil }

func (v *SuggestView) Focus() tea.Cmd {
	v.focused = true
	return nil
}

func (v *SuggestView) Blur() { v.focused = false }

// Selected returns the highlighted query.
func (v *SuggestView) Selected() string {
	if len(v.queries) == 0 {
		return ""
	}
	return v.queries[v.selected]
}

func (v *SuggestView) Update(msg tea.Msg) (View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(v.queries) == 0 {
		return v, nil
	}

	switch key.String() {
	case "up", "k":
		v.selected = (v.selected - 1 + len(v.queries)) % len(v.queries)
	case "down", "j":
		v.selected = (v.selected + 1) % len(v.queries)
	case "enter":
		query := v.Selected()
		return v, func() tea.Msg { return SuggestionMsg{Query: query} }
	}
	return v, nil
}

func (v *SuggestView) View() string {
	lines := []string{StyleTitle.Render("Suggested Queries")}

	itemW := v.width - 4
	for i, q := range v.queries {
		label := q
		if itemW > 0 && lipgloss.Width(label) > itemW {
			label = lipgloss.NewStyle().Width(itemW).Render(label)
		}
		prefix := StyleHelpKey.Render(fmt.Sprintf("%d.", i+1)) + " "
		item := prefix + label
		if i == v.selected && v.focused {
			item = StyleListItemActive.Render(fmt.Sprintf("%d. ", i+1) + label)
		}
		lines = append(lines, item)
	}

	lines = append(lines, "", StyleDimmed.Render("Alt+1…"+fmt.Sprint(len(v.queries))+" to run"))
	return strings.Join(lines, "\n")
}

// DefaultSuggestions returns the built-in query list.
func DefaultSuggestions() []string {
	out := make([]string, len(chat.SuggestedQueries))
	copy(out, chat.SuggestedQueries)
	return out
}
