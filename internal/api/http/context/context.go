package context

import (
	"context"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

type identityKey struct{}

// Manager stores the resolved caller identity on a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a copy of ctx carrying identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the identity set by SetIdentityToContext.
// Anonymous requests report false.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	if !ok || identity.Email == "" {
		return model.Identity{}, false
	}
	return identity, true
}
