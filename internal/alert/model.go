// Package alert holds the confirmation alert shown before credentials change.
// UI drivers poll Model for a pending alert and confirm it.
package alert

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/auth"
	"github.com/google/uuid"
)

var ErrAlreadyPresenting = errors.New("a confirmation alert is already presented")

// Model tracks at most one presented confirmation.
type Model struct {
	mu      sync.Mutex
	pending *auth.Confirmation
	logger  *slog.Logger
}

func NewModel(logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{logger: logger}
}

// PresentConfirmation implements auth.AlertPresenter.
func (m *Model) PresentConfirmation(ctx context.Context, c *auth.Confirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil && !m.pending.Resolved() {
		return ErrAlreadyPresenting
	}
	m.pending = c
	m.logger.InfoContext(ctx, "alert_presented", "confirmation_id", c.ID())
	return nil
}

// Presenting reports whether an unresolved confirmation is shown.
func (m *Model) Presenting() bool {
	_, ok := m.Pending()
	return ok
}

// Pending returns the id of the shown confirmation.
func (m *Model) Pending() (uuid.UUID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil || m.pending.Resolved() {
		m.pending = nil
		return uuid.Nil, false
	}
	return m.pending.ID(), true
}

// Confirm resumes the waiting operation. It returns false when no alert is
// shown.
func (m *Model) Confirm() bool {
	m.mu.Lock()
	c := m.pending
	m.pending = nil
	m.mu.Unlock()

	if c == nil || !c.Resolve() {
		return false
	}
	m.logger.Info("alert_confirmed", "confirmation_id", c.ID())
	return true
}
