package tui

import "github.com/Deadmanswitch/encryption/models"

// NavigateTo switches the root router to another page. An optional Payload
// is delivered to the target page right after the switch.
type NavigateTo struct {
	Page    string
	Payload any
}

// AuthResult is produced by the async login command. A nil Err means the
// adapter now holds a session token and the vault screens may be opened.
type AuthResult struct {
	Err      error
	Username string
	UserID   int64
}

// RegisterSuccessNotice is shown on the menu after a completed registration.
type RegisterSuccessNotice struct {
	Username string
}

// openRecoverMsg preselects an item on the recover screen.
type openRecoverMsg struct {
	itemID string
}

type itemsLoadedMsg struct {
	items []models.ProtectedItem
	err   error
}

type protectDoneMsg struct {
	item models.ProtectedItem
	err  error
}

type recoverDoneMsg struct {
	payload []byte
	err     error
}

type copiedMsg struct{}
