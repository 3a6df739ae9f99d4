// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Deadmanswitch/encryption/internal/service"
)

// RecoverModel is the form for recovering a protected payload: item ID and
// the protecting password. A wrong password is rejected against the stored
// fingerprint before any ciphertext is downloaded. The recovered payload is
// shown on screen and can be copied to the system clipboard.
type RecoverModel struct {
	ctx     context.Context
	protect service.ClientProtectService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	status     string
	recovered  string
}

func NewRecoverModel(ctx context.Context, protect service.ClientProtectService) *RecoverModel {
	idInput := textinput.New()
	idInput.Placeholder = "item id"
	idInput.CharLimit = 64
	idInput.Width = 40
	idInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "protecting password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	return &RecoverModel{
		ctx:     ctx,
		protect: protect,
		inputs:  []textinput.Model{idInput, passwordInput},
	}
}

func (m *RecoverModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RecoverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openRecoverMsg:
		m.inputs[0].SetValue(msg.itemID)
		m.focusField(1)
		m.recovered = ""
		m.status = ""
		m.errMsg = ""
		return m, nil
	case recoverDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.recovered = string(msg.payload)
		m.inputs[1].Reset()
		return m, nil
	case copiedMsg:
		m.status = "copied to clipboard"
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			m.status = ""
			m.recovered = ""
			return m, func() tea.Msg { return NavigateTo{Page: "vault"} }
		case "tab":
			m.focusField((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab":
			m.focusField((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil
		case "ctrl+y":
			if m.recovered != "" {
				return m, m.cmdCopy()
			}
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			itemID := strings.TrimSpace(m.inputs[0].Value())
			pass := m.inputs[1].Value()
			if itemID == "" || pass == "" {
				m.errMsg = "item id and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.status = ""
			m.recovered = ""
			m.submitting = true
			return m, m.cmdRecover(itemID, pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RecoverModel) View() string {
	var b strings.Builder
	b.WriteString("Item ID  │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Recovering...]\n")
	} else {
		b.WriteString("\n[Recover]\n")
	}

	if m.recovered != "" {
		b.WriteString("\nRecovered payload:\n")
		b.WriteString(fitText(m.recovered, 512))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("RECOVER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit │ ctrl+y: copy")
}

func (m *RecoverModel) cmdRecover(itemID, pass string) tea.Cmd {
	ctx := m.ctx
	protect := m.protect

	return func() tea.Msg {
		payload, err := protect.Recover(ctx, itemID, pass)
		return recoverDoneMsg{payload: payload, err: err}
	}
}

func (m *RecoverModel) cmdCopy() tea.Cmd {
	recovered := m.recovered

	return func() tea.Msg {
		if err := clipboard.WriteAll(recovered); err != nil {
			return recoverDoneMsg{err: err}
		}
		return copiedMsg{}
	}
}

func (m *RecoverModel) focusField(idx int) {
	m.inputs[m.focus].Blur()
	m.focus = idx
	m.inputs[m.focus].Focus()
}
