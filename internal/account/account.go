package account

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrIncompleteDetails is returned when a supplied snapshot lacks a required key.
var ErrIncompleteDetails = errors.New("account details incomplete")

// Account is the canonical holder of the currently signed-in user.
// Account services push snapshots into it; UI code reads from it.
type Account struct {
	mu       sync.RWMutex
	details  Details
	signedIn bool
	changes  chan struct{}
}

func NewAccount() *Account {
	return &Account{changes: make(chan struct{}, 1)}
}

// SupplyUserDetails replaces the current snapshot and marks the user signed in.
func (a *Account) SupplyUserDetails(ctx context.Context, details Details) error {
	for _, k := range []Key{KeyAccountID, KeyUserID} {
		if !details.Has(k) {
			return fmt.Errorf("%w: missing %s", ErrIncompleteDetails, k)
		}
	}

	a.mu.Lock()
	a.details = details
	a.signedIn = true
	a.mu.Unlock()

	a.notify()
	return nil
}

// RemoveUserDetails clears the snapshot.
func (a *Account) RemoveUserDetails(ctx context.Context) {
	a.mu.Lock()
	a.details = Details{}
	a.signedIn = false
	a.mu.Unlock()

	a.notify()
}

// Details returns the current snapshot, if any.
func (a *Account) Details() (Details, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.details, a.signedIn
}

func (a *Account) SignedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.signedIn
}

// Changes signals after every supply or removal. Signals coalesce when
// nobody is listening.
func (a *Account) Changes() <-chan struct{} {
	return a.changes
}

func (a *Account) notify() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}
