// Package storage provides the persistence layer: a key-value contract over
// JSON snapshots plus a typed repository on top of it.
package storage

import (
	"context"
	"errors"
)

// Logical snapshot keys. Every persisted piece of state lives under exactly
// one of these.
const (
	KeyUser           = "user"
	KeySummary        = "summary"
	KeyTransactions   = "transactions"
	KeyGroups         = "groups"
	KeyFriends        = "friends"
	KeyNotifications  = "notifications"
	KeyCashback       = "cashback-data"
	KeyFirstTime      = "first-time-flag"
	KeyRecurringBills = "recurring-bills"
	KeySavedCards     = "saved-cards"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store defines the key-value snapshot contract. This abstraction allows
// swapping storage backends (SQLite, in-memory) without changing the
// service layer.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value under key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Wipe removes every stored value. Used by the delete-all-data flow.
	Wipe(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
