package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

// IdentityService resolves callers and manages browser sessions.
type IdentityService interface {
	Resolve(ctx context.Context, cred model.Credential) (model.Identity, error)
	StartSession(ctx context.Context, identity model.Identity) (model.Session, error)
	EndSession(ctx context.Context, sessionID string) error
}

// CookieOptions configures the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// Session exchanges bearer tokens for session cookies.
type Session struct {
	identityService IdentityService
	cookie          CookieOptions
	logger          *logger.Logger
}

// NewSession creates a new Session handler.
func NewSession(identityService IdentityService, cookie CookieOptions, logger *logger.Logger) *Session {
	return &Session{
		identityService: identityService,
		cookie:          cookie,
		logger:          logger,
	}
}

type sessionResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create starts a session for the bearer token holder and sets the cookie.
func (h *Session) Create(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		WriteError(w, model.ErrUnauthenticated)
		return
	}

	identity, err := h.identityService.Resolve(r.Context(), model.Credential{Bearer: token})
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.identityService.StartSession(r.Context(), identity)
	if err != nil {
		h.logger.Error("Session handler: failed to start session",
			"email", identity.Email,
			"error", err.Error())
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	WriteJSON(w, http.StatusOK, sessionResponse{Email: session.Email, ExpiresAt: session.ExpiresAt})
}

// Delete ends the cookie session. Missing or unknown sessions still succeed.
func (h *Session) Delete(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.cookie.Name); err == nil && c.Value != "" {
		if err := h.identityService.EndSession(r.Context(), c.Value); err != nil {
			h.logger.Error("Session handler: failed to end session", "error", err.Error())
			WriteError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
