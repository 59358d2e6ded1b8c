package model

import (
	"context"
	"time"
)

// Classification is the access level derived for an email.
type Classification string

const (
	ClassificationBlocked    Classification = "blocked"
	ClassificationNotAllowed Classification = "not_allowed"
	ClassificationAllowed    Classification = "allowed"
	ClassificationAdmin      Classification = "admin"
)

// Permitted reports whether the classification may use customer operations.
func (c Classification) Permitted() bool {
	return c == ClassificationAllowed || c == ClassificationAdmin
}

// AccessFlags is the raw membership of an email across the access sets.
type AccessFlags struct {
	Blocked bool
	Admin   bool
	Allowed bool
}

// AccessEntry is a row of the admin access listing.
type AccessEntry struct {
	Email      string
	Blocked    bool
	Admin      bool
	Allowed    bool
	ApprovedBy string
	UpdatedAt  time.Time
}

// AccessStore persists the blocked, allowed and admin sets.
// All mutations are idempotent.
type AccessStore interface {
	Lookup(ctx context.Context, email string) (AccessFlags, error)
	Allow(ctx context.Context, email, approvedBy string) error
	Disallow(ctx context.Context, email string) error
	Block(ctx context.Context, email string) error
	Unblock(ctx context.Context, email string) error
	AddAdmin(ctx context.Context, email string) error
	RemoveAdmin(ctx context.Context, email string) error
	List(ctx context.Context) ([]AccessEntry, error)
}

// SessionRevoker drops every live session of an email.
type SessionRevoker interface {
	RevokeAll(ctx context.Context, email string) error
}
