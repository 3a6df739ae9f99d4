package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// VaultModel is the main menu shown after authentication.
type VaultModel struct {
	items []string
	idx   int
}

func NewVaultModel() *VaultModel {
	return &VaultModel{
		items: []string{"List items", "Protect payload", "Recover payload", "Quit"},
	}
}

func (m *VaultModel) Init() tea.Cmd {
	return nil
}

func (m *VaultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "enter":
		switch m.idx {
		case 0:
			return m, func() tea.Msg { return NavigateTo{Page: "list"} }
		case 1:
			return m, func() tea.Msg { return NavigateTo{Page: "protect"} }
		case 2:
			return m, func() tea.Msg { return NavigateTo{Page: "recover"} }
		default:
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *VaultModel) View() string {
	var b strings.Builder
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(item)
		b.WriteString("\n")
	}

	return renderPage("VAULT", strings.TrimRight(b.String(), "\n"), "↑/↓: move │ enter: select")
}
