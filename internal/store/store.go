// Package store persists user accounts and farm logbook entries. Stores are
// interface-driven so handlers and the auth service can run against the
// in-memory implementation in tests and SQLite in production.
package store

import (
	"context"
	"errors"

	"github.com/croppilot/croppilot/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row owned by the caller.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicatePhone is returned when registering a phone number that
	// already has an account.
	ErrDuplicatePhone = errors.New("phone number already registered")
)

// UserStore persists farmer accounts.
type UserStore interface {
	Create(ctx context.Context, user domain.User) error
	FindByPhone(ctx context.Context, phone string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// LogStore persists logbook entries. Delete and ListByUser are scoped to the
// owning user so one farmer can never touch another's entries.
type LogStore interface {
	Append(ctx context.Context, entry domain.FarmLog) error
	ListByUser(ctx context.Context, userID string) ([]domain.FarmLog, error)
	Delete(ctx context.Context, id, userID string) error
}
