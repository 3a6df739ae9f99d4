package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Deadmanswitch/encryption/internal/service"
	"github.com/Deadmanswitch/encryption/models"
)

// ListModel shows the item descriptors stored for the account. Selecting an
// entry opens the recover screen with the item preselected.
type ListModel struct {
	ctx     context.Context
	protect service.ClientProtectService

	items   []models.ProtectedItem
	idx     int
	loading bool
	lastErr error
}

func NewListModel(ctx context.Context, protect service.ClientProtectService) *ListModel {
	return &ListModel{ctx: ctx, protect: protect}
}

func (m *ListModel) Init() tea.Cmd {
	m.loading = true
	m.lastErr = nil
	return m.cmdLoad()
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if loaded, ok := msg.(itemsLoadedMsg); ok {
		m.loading = false
		m.lastErr = loaded.err
		m.items = loaded.items
		if m.idx >= len(m.items) {
			m.idx = 0
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return NavigateTo{Page: "vault"} }
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "r":
		m.loading = true
		return m, m.cmdLoad()
	case "enter":
		if m.idx < len(m.items) {
			itemID := m.items[m.idx].ID
			return m, func() tea.Msg {
				return NavigateTo{Page: "recover", Payload: openRecoverMsg{itemID: itemID}}
			}
		}
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.items) == 0:
		b.WriteString("No items\n")
	default:
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			b.WriteString(fmt.Sprintf("%s%-24s %-24s %6d B  %s\n",
				cursor,
				fitText(item.Name, 24),
				fitText(item.ContentType, 24),
				item.Size,
				fitText(item.ID, 12),
			))
		}
	}

	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n")
	}

	return renderPage("ITEMS", strings.TrimRight(b.String(), "\n"), "esc: back │ r: reload │ enter: recover")
}

func (m *ListModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	protect := m.protect

	return func() tea.Msg {
		items, err := protect.List(ctx, models.ItemListFilter{})
		return itemsLoadedMsg{items: items, err: err}
	}
}
