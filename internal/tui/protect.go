package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Deadmanswitch/encryption/internal/service"
)

// ProtectModel is the form for protecting a payload: item name, content
// type, protecting password and the payload itself. Encryption happens
// locally; the ciphertext frames are queued and uploaded in the background,
// so the screen reports success as soon as the item descriptor is
// registered.
type ProtectModel struct {
	ctx     context.Context
	protect service.ClientProtectService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	doneMsg    string
}

func NewProtectModel(ctx context.Context, protect service.ClientProtectService) *ProtectModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "item name"
	nameInput.CharLimit = 128
	nameInput.Width = 40
	nameInput.Focus()

	typeInput := textinput.New()
	typeInput.Placeholder = "text/plain"
	typeInput.CharLimit = 64
	typeInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "protecting password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	payloadInput := textinput.New()
	payloadInput.Placeholder = "payload"
	payloadInput.CharLimit = 0
	payloadInput.Width = 40

	return &ProtectModel{
		ctx:     ctx,
		protect: protect,
		inputs:  []textinput.Model{nameInput, typeInput, passwordInput, payloadInput},
	}
}

func (m *ProtectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ProtectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(protectDoneMsg); ok {
		m.submitting = false
		if done.err != nil {
			m.errMsg = done.err.Error()
			return m, nil
		}

		m.doneMsg = "Protected as " + done.item.ID
		m.inputs[2].Reset()
		m.inputs[3].Reset()
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			m.doneMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "vault"} }
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			name := strings.TrimSpace(m.inputs[0].Value())
			contentType := strings.TrimSpace(m.inputs[1].Value())
			pass := m.inputs[2].Value()
			payload := m.inputs[3].Value()
			if name == "" || pass == "" {
				m.errMsg = "name and password are required"
				return m, nil
			}
			if contentType == "" {
				contentType = "text/plain"
			}

			m.errMsg = ""
			m.doneMsg = ""
			m.submitting = true
			return m, m.cmdProtect(name, contentType, pass, []byte(payload))
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *ProtectModel) View() string {
	var b strings.Builder
	labels := []string{"Name    ", "Type    ", "Password", "Payload "}
	for i, label := range labels {
		b.WriteString(label)
		b.WriteString(" │ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Protecting...]\n")
	} else {
		b.WriteString("\n[Protect]\n")
	}

	if m.doneMsg != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.doneMsg)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("PROTECT", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *ProtectModel) cmdProtect(name, contentType, pass string, payload []byte) tea.Cmd {
	ctx := m.ctx
	protect := m.protect

	return func() tea.Msg {
		item, err := protect.Protect(ctx, name, contentType, pass, payload)
		return protectDoneMsg{item: item, err: err}
	}
}

func (m *ProtectModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *ProtectModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
