package middleware

import (
	"context"
	"net/http"

	"github.com/dtroode/fuelsupply-server/internal/api/http/handler"
	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

// IdentityResolver turns request credentials into an identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, cred model.Credential) (model.Identity, error)
}

// AdminGate checks the admin classification.
type AdminGate interface {
	RequireAdmin(ctx context.Context, email string) error
}

// Authenticate resolves the caller from a bearer token or session cookie and
// stores the identity on the request context.
type Authenticate struct {
	resolver       IdentityResolver
	contextManager model.ContextManager
	cookieName     string
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(resolver IdentityResolver, contextManager model.ContextManager, cookieName string, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		resolver:       resolver,
		contextManager: contextManager,
		cookieName:     cookieName,
		logger:         logger,
	}
}

func (m *Authenticate) credential(r *http.Request) model.Credential {
	cred := model.Credential{Bearer: handler.BearerToken(r)}
	if c, err := r.Cookie(m.cookieName); err == nil {
		cred.SessionID = c.Value
	}
	return cred
}

// Required rejects requests without a resolvable identity.
func (m *Authenticate) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cred := m.credential(r)
		if cred.Empty() {
			handler.WriteError(w, model.ErrUnauthenticated)
			return
		}

		identity, err := m.resolver.Resolve(r.Context(), cred)
		if err != nil {
			handler.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetIdentityToContext(r.Context(), identity)))
	})
}

// Optional resolves the identity when one is presented. Requests with
// missing or unusable credentials continue anonymously.
func (m *Authenticate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cred := m.credential(r)
		if cred.Empty() {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := m.resolver.Resolve(r.Context(), cred)
		if err != nil {
			m.logger.Debug("Authenticate middleware: continuing anonymously",
				"path", r.URL.Path,
				"error", err.Error())
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetIdentityToContext(r.Context(), identity)))
	})
}

// RequireAdmin allows only administrators through. It expects Required to
// have run first.
type RequireAdmin struct {
	gate           AdminGate
	contextManager model.ContextManager
}

// NewRequireAdmin creates a new RequireAdmin middleware instance.
func NewRequireAdmin(gate AdminGate, contextManager model.ContextManager) *RequireAdmin {
	return &RequireAdmin{gate: gate, contextManager: contextManager}
}

func (m *RequireAdmin) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := m.contextManager.GetIdentityFromContext(r.Context())
		if !ok {
			handler.WriteError(w, model.ErrUnauthenticated)
			return
		}

		if err := m.gate.RequireAdmin(r.Context(), identity.Email); err != nil {
			handler.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
