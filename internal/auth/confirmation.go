package auth

import (
	"sync"

	"github.com/google/uuid"
)

// Confirmation is a single-use handshake between a suspended operation and
// whoever presents the confirmation UI. It can be resolved exactly once.
type Confirmation struct {
	id   uuid.UUID
	once sync.Once
	done chan struct{}
}

func NewConfirmation() *Confirmation {
	return &Confirmation{id: uuid.New(), done: make(chan struct{})}
}

func (c *Confirmation) ID() uuid.UUID {
	return c.id
}

// Resolve releases the waiting operation. It returns false if the
// confirmation was already resolved.
func (c *Confirmation) Resolve() bool {
	resolved := false
	c.once.Do(func() {
		close(c.done)
		resolved = true
	})
	return resolved
}

// Done is closed once the confirmation is resolved.
func (c *Confirmation) Done() <-chan struct{} {
	return c.done
}

func (c *Confirmation) Resolved() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
