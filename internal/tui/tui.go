// Package tui implements the interactive terminal client of the vault.
// It is a Bubble Tea application: a root router model owns a set of page
// models (menu, login, register, vault, list, protect, recover) and
// delegates messages to the active one.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/internal/service"
)

// ErrUserQuit reports that the user left the program with ctrl+c or the
// quit menu entry rather than through an error.
var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services *service.ClientServices
	logger   *logger.Logger
}

func New(services *service.ClientServices, logger *logger.Logger) *TUI {
	return &TUI{services: services, logger: logger}
}

// Run drives the whole interactive session: authentication first, then the
// vault screens. It blocks until the user quits or the program fails.
func (t *TUI) Run(ctx context.Context) error {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
		"vault":    NewVaultModel(),
		"list":     NewListModel(ctx, t.services.ProtectService),
		"protect":  NewProtectModel(ctx, t.services.ProtectService),
		"recover":  NewRecoverModel(ctx, t.services.ProtectService),
	}

	root := NewRootModel(pages, "menu")
	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}
