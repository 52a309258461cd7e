package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

const (
	stateMenu = iota
	stateSim
)

// Launcher builds the live model for a named scene.
type Launcher func(name string) (Model, error)

// Menu lets the user pick a scene, then hands control to its live model.
type Menu struct {
	state  int
	cursor int
	names  []string
	info   map[string]string
	launch Launcher
	live   Model
	err    error
}

func NewMenu(names []string, info map[string]string, launch Launcher) Menu {
	return Menu{names: names, info: info, launch: launch}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.state = stateMenu
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.names) == 0 {
			return m, nil
		}
		live, err := m.launch(m.names[m.cursor])
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live, m.err = live, nil
		m.state = stateSim
		return m, m.live.Init()
	}
	return m, nil
}

func (m Menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	var s strings.Builder
	s.WriteString(cyan.Bold(true).Render("FORCEBOX") + "\n\n")
	for i, name := range m.names {
		cursor := "  "
		line := fmt.Sprintf("%-10s %s", name, dim.Render(m.info[name]))
		if i == m.cursor {
			cursor = cyan.Render("> ")
			line = cyan.Render(fmt.Sprintf("%-10s", name)) + " " + dim.Render(m.info[name])
		}
		s.WriteString(cursor + line + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + dim.Render("↑↓ select · enter run · esc back · q quit"))
	return s.String()
}
