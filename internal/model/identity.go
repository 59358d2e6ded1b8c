package model

import (
	"context"
	"strings"
	"time"
)

// Identity is the authenticated caller. Email is always normalized.
type Identity struct {
	Email   string
	Subject string
}

// Credential carries whatever the transport extracted from a request.
type Credential struct {
	Bearer    string
	SessionID string
}

// Empty reports whether no credential was presented.
func (c Credential) Empty() bool {
	return c.Bearer == "" && c.SessionID == ""
}

// TokenVerifier validates a bearer token and returns its identity claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Session is a server-side browser session bound to an identity.
type Session struct {
	ID        string
	Email     string
	Subject   string
	ExpiresAt time.Time
}

// SessionStore persists browser sessions.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	RevokeAll(ctx context.Context, email string) error
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail performs a minimal syntactic check on a normalized address.
func ValidEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t\r\n")
}
