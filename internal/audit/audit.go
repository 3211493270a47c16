package audit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of the audit log.
type EventType string

const (
	EventLoginSuccess   EventType = "LOGIN_SUCCESS"
	EventLoginFailed    EventType = "LOGIN_FAILED"
	EventSignup         EventType = "SIGNUP"
	EventSignupFailed   EventType = "SIGNUP_FAILED"
	EventDetailsUpdated EventType = "DETAILS_UPDATED"
	EventPasswordReset  EventType = "PASSWORD_RESET"
	EventLogout         EventType = "LOGOUT"
	EventAccountDeleted EventType = "ACCOUNT_DELETED"
)

// AuditLogger defines the contract for the account audit trail.
type AuditLogger interface {
	Log(ctx context.Context, actorID uuid.UUID, action EventType, resource string, metadata map[string]string)
}

// JSONAuditLogger writes structured logs with a specific "audit" marker
// so aggregators can route them to a separate index.
type JSONAuditLogger struct {
	logger *slog.Logger
}

// NewJSONAuditLogger writes to stdout.
func NewJSONAuditLogger() *JSONAuditLogger {
	return NewJSONAuditLoggerTo(os.Stdout)
}

// NewJSONAuditLoggerTo writes to w. It uses its own handler so the format is
// independent of the application logger.
func NewJSONAuditLoggerTo(w io.Writer) *JSONAuditLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &JSONAuditLogger{
		logger: slog.New(handler),
	}
}

func (l *JSONAuditLogger) Log(ctx context.Context, actorID uuid.UUID, action EventType, resource string, metadata map[string]string) {
	fields := []any{
		slog.String("log_type", "AUDIT_TRAIL"),
		slog.String("actor_id", actorID.String()),
		slog.String("action", string(action)),
		slog.String("resource", resource),
		slog.Time("timestamp_utc", time.Now().UTC()),
	}

	for k, v := range metadata {
		fields = append(fields, slog.String("meta_"+k, v))
	}

	l.logger.InfoContext(ctx, "audit_event", fields...)
}

// Entry is one event captured by MockAuditLogger.
type Entry struct {
	ActorID  uuid.UUID
	Action   EventType
	Resource string
	Metadata map[string]string
}

// MockAuditLogger records events in memory for tests.
type MockAuditLogger struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *MockAuditLogger) Log(ctx context.Context, actorID uuid.UUID, action EventType, resource string, metadata map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{ActorID: actorID, Action: action, Resource: resource, Metadata: metadata})
}

// Actions returns the recorded event types in order.
func (m *MockAuditLogger) Actions() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EventType, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

// Entries returns a copy of everything recorded.
func (m *MockAuditLogger) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}
