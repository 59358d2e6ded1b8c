package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

// Access classifies emails and applies administrator changes to the access sets.
type Access struct {
	store   model.AccessStore
	revoker model.SessionRevoker
	logger  *logger.Logger
}

// NewAccess creates the access gate. revoker is optional; when set, approving
// or blocking an email drops its live sessions.
func NewAccess(store model.AccessStore, revoker model.SessionRevoker, logger *logger.Logger) *Access {
	return &Access{
		store:   store,
		revoker: revoker,
		logger:  logger,
	}
}

// Classify derives the access level of email. Blocked wins over admin, admin over allowed.
func (a *Access) Classify(ctx context.Context, email string) (model.Classification, error) {
	ctx, span := tracer.Start(ctx, "Access.Service.Classify")
	defer span.End()

	email = model.NormalizeEmail(email)
	if email == "" {
		return "", fail(span, model.ErrUnauthenticated)
	}

	flags, err := a.store.Lookup(ctx, email)
	if err != nil {
		a.logger.Error("Access service: failed to lookup access flags",
			"email", email,
			"error", err.Error())
		return "", fail(span, storeError("lookup access", err))
	}

	var c model.Classification
	switch {
	case flags.Blocked:
		c = model.ClassificationBlocked
	case flags.Admin:
		c = model.ClassificationAdmin
	case flags.Allowed:
		c = model.ClassificationAllowed
	default:
		c = model.ClassificationNotAllowed
	}
	span.SetAttributes(attribute.String("classification", string(c)))

	return c, nil
}

// Authorize succeeds for allowed and admin emails.
func (a *Access) Authorize(ctx context.Context, email string) (model.Classification, error) {
	c, err := a.Classify(ctx, email)
	if err != nil {
		return "", err
	}

	switch c {
	case model.ClassificationBlocked:
		a.logger.Info("Access service: blocked email rejected", "email", model.NormalizeEmail(email))
		return c, model.ErrBlocked
	case model.ClassificationNotAllowed:
		return c, model.ErrNotAllowed
	}
	return c, nil
}

// RequireAdmin succeeds only for admin emails that are not blocked.
func (a *Access) RequireAdmin(ctx context.Context, email string) error {
	c, err := a.Classify(ctx, email)
	if err != nil {
		return err
	}

	switch c {
	case model.ClassificationAdmin:
		return nil
	case model.ClassificationBlocked:
		return model.ErrBlocked
	default:
		return model.ErrForbidden
	}
}

func (a *Access) target(email string) (string, error) {
	email = model.NormalizeEmail(email)
	if !model.ValidEmail(email) {
		return "", fmt.Errorf("%w: invalid email", model.ErrValidation)
	}
	return email, nil
}

// mutate checks the actor, validates the target and runs op.
func (a *Access) mutate(ctx context.Context, name, actor, email string, op func(ctx context.Context, email string) error) (string, error) {
	ctx, span := tracer.Start(ctx, "Access.Service."+name)
	defer span.End()

	if err := a.RequireAdmin(ctx, actor); err != nil {
		a.logger.Info("Access service: admin operation rejected",
			"operation", name,
			"actor", model.NormalizeEmail(actor))
		return "", fail(span, err)
	}

	target, err := a.target(email)
	if err != nil {
		return "", fail(span, err)
	}

	if err := op(ctx, target); err != nil {
		a.logger.Error("Access service: admin operation failed",
			"operation", name,
			"email", target,
			"error", err.Error())
		return "", fail(span, storeError(name, err))
	}

	a.logger.Info("Access service: admin operation applied",
		"operation", name,
		"actor", model.NormalizeEmail(actor),
		"email", target)

	return target, nil
}

// Approve allow-lists email and lifts any block on it.
func (a *Access) Approve(ctx context.Context, actor, email string) error {
	approvedBy := model.NormalizeEmail(actor)
	target, err := a.mutate(ctx, "Approve", actor, email, func(ctx context.Context, email string) error {
		return a.store.Allow(ctx, email, approvedBy)
	})
	if err != nil {
		return err
	}

	if err := a.store.Unblock(ctx, target); err != nil {
		a.logger.Warn("Access service: failed to unblock approved email",
			"email", target,
			"error", err.Error())
	}
	a.revokeSessions(ctx, target)

	return nil
}

// Revoke removes email from the allow list.
func (a *Access) Revoke(ctx context.Context, actor, email string) error {
	_, err := a.mutate(ctx, "Revoke", actor, email, a.store.Disallow)
	return err
}

// Block adds email to the block list and drops its sessions.
func (a *Access) Block(ctx context.Context, actor, email string) error {
	target, err := a.mutate(ctx, "Block", actor, email, a.store.Block)
	if err != nil {
		return err
	}
	a.revokeSessions(ctx, target)
	return nil
}

// Unblock removes email from the block list.
func (a *Access) Unblock(ctx context.Context, actor, email string) error {
	_, err := a.mutate(ctx, "Unblock", actor, email, a.store.Unblock)
	return err
}

// GrantAdmin adds email to the admin set.
func (a *Access) GrantAdmin(ctx context.Context, actor, email string) error {
	_, err := a.mutate(ctx, "GrantAdmin", actor, email, a.store.AddAdmin)
	return err
}

// RevokeAdmin removes email from the admin set. Admins cannot demote themselves.
func (a *Access) RevokeAdmin(ctx context.Context, actor, email string) error {
	if model.NormalizeEmail(actor) == model.NormalizeEmail(email) && email != "" {
		if err := a.RequireAdmin(ctx, actor); err != nil {
			return err
		}
		return fmt.Errorf("%w: cannot revoke own admin membership", model.ErrValidation)
	}
	_, err := a.mutate(ctx, "RevokeAdmin", actor, email, a.store.RemoveAdmin)
	return err
}

// List returns every email present in any access set.
func (a *Access) List(ctx context.Context, actor string) ([]model.AccessEntry, error) {
	ctx, span := tracer.Start(ctx, "Access.Service.List")
	defer span.End()

	if err := a.RequireAdmin(ctx, actor); err != nil {
		return nil, fail(span, err)
	}

	entries, err := a.store.List(ctx)
	if err != nil {
		a.logger.Error("Access service: failed to list access entries", "error", err.Error())
		return nil, fail(span, storeError("list access", err))
	}
	return entries, nil
}

func (a *Access) revokeSessions(ctx context.Context, email string) {
	if a.revoker == nil {
		return
	}
	if err := a.revoker.RevokeAll(ctx, email); err != nil {
		a.logger.Warn("Access service: failed to revoke sessions",
			"email", email,
			"error", err.Error())
	}
}
