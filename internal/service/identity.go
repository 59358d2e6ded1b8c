package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

// Identity resolves callers from bearer tokens or session cookies.
type Identity struct {
	verifier   model.TokenVerifier
	sessions   model.SessionStore
	sessionTTL time.Duration
	logger     *logger.Logger
}

func NewIdentity(
	verifier model.TokenVerifier,
	sessions model.SessionStore,
	sessionTTL time.Duration,
	logger *logger.Logger,
) *Identity {
	return &Identity{
		verifier:   verifier,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Resolve returns the identity carried by cred. A bearer token takes
// precedence over a session cookie. Every failure is ErrUnauthenticated.
func (s *Identity) Resolve(ctx context.Context, cred model.Credential) (model.Identity, error) {
	ctx, span := tracer.Start(ctx, "Identity.Service.Resolve")
	defer span.End()

	var (
		identity model.Identity
		err      error
	)
	switch {
	case cred.Bearer != "":
		span.SetAttributes(attribute.String("credential", "bearer"))
		identity, err = s.verifier.Verify(ctx, cred.Bearer)
		if err != nil {
			s.logger.Debug("Identity service: bearer token rejected", "error", err.Error())
			return model.Identity{}, fail(span, model.ErrUnauthenticated)
		}
	case cred.SessionID != "":
		span.SetAttributes(attribute.String("credential", "session"))
		session, err := s.sessions.Get(ctx, cred.SessionID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				s.logger.Error("Identity service: failed to get session", "error", err.Error())
			}
			return model.Identity{}, fail(span, model.ErrUnauthenticated)
		}
		identity = model.Identity{Email: session.Email, Subject: session.Subject}
	default:
		return model.Identity{}, fail(span, model.ErrUnauthenticated)
	}

	identity.Email = model.NormalizeEmail(identity.Email)
	if identity.Email == "" {
		return model.Identity{}, fail(span, model.ErrUnauthenticated)
	}

	return identity, nil
}

// StartSession creates a browser session for an already resolved identity.
func (s *Identity) StartSession(ctx context.Context, identity model.Identity) (model.Session, error) {
	ctx, span := tracer.Start(ctx, "Identity.Service.StartSession")
	defer span.End()

	id, err := newSessionID()
	if err != nil {
		return model.Session{}, fail(span, fmt.Errorf("failed to generate session id: %w", err))
	}

	session := model.Session{
		ID:        id,
		Email:     identity.Email,
		Subject:   identity.Subject,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error("Identity service: failed to create session",
			"email", identity.Email,
			"error", err.Error())
		return model.Session{}, fail(span, storeError("create session", err))
	}

	s.logger.Info("Identity service: session started", "email", identity.Email)

	return session, nil
}

// EndSession deletes a session. Unknown sessions are ignored.
func (s *Identity) EndSession(ctx context.Context, sessionID string) error {
	ctx, span := tracer.Start(ctx, "Identity.Service.EndSession")
	defer span.End()

	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error("Identity service: failed to delete session", "error", err.Error())
		return fail(span, storeError("delete session", err))
	}
	return nil
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
