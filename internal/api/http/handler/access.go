package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

// AccessService classifies callers and manages the access sets.
type AccessService interface {
	Classify(ctx context.Context, email string) (model.Classification, error)
	Approve(ctx context.Context, actor, email string) error
	Revoke(ctx context.Context, actor, email string) error
	Block(ctx context.Context, actor, email string) error
	Unblock(ctx context.Context, actor, email string) error
	GrantAdmin(ctx context.Context, actor, email string) error
	RevokeAdmin(ctx context.Context, actor, email string) error
	List(ctx context.Context, actor string) ([]model.AccessEntry, error)
}

// Access handles the caller's own classification and the admin access surface.
type Access struct {
	accessService  AccessService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAccess creates a new Access handler.
func NewAccess(accessService AccessService, contextManager model.ContextManager, logger *logger.Logger) *Access {
	return &Access{
		accessService:  accessService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type classificationResponse struct {
	Email          string               `json:"email"`
	Classification model.Classification `json:"classification"`
}

type accessRequest struct {
	Email string `json:"email"`
}

type accessEntryResponse struct {
	Email      string    `json:"email"`
	Blocked    bool      `json:"blocked"`
	Admin      bool      `json:"admin"`
	Allowed    bool      `json:"allowed"`
	ApprovedBy string    `json:"approved_by,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Me reports the caller's classification.
func (h *Access) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, model.ErrUnauthenticated)
		return
	}

	c, err := h.accessService.Classify(r.Context(), identity.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, classificationResponse{Email: identity.Email, Classification: c})
}

// List returns every email present in any access set.
func (h *Access) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, model.ErrUnauthenticated)
		return
	}

	entries, err := h.accessService.List(r.Context(), identity.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]accessEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, accessEntryResponse{
			Email:      e.Email,
			Blocked:    e.Blocked,
			Admin:      e.Admin,
			Allowed:    e.Allowed,
			ApprovedBy: e.ApprovedBy,
			UpdatedAt:  e.UpdatedAt,
		})
	}
	WriteJSON(w, http.StatusOK, out)
}

func (h *Access) Approve(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "approve", h.accessService.Approve)
}

func (h *Access) Revoke(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "revoke", h.accessService.Revoke)
}

func (h *Access) Block(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "block", h.accessService.Block)
}

func (h *Access) Unblock(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "unblock", h.accessService.Unblock)
}

func (h *Access) GrantAdmin(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "grant admin", h.accessService.GrantAdmin)
}

func (h *Access) RevokeAdmin(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "revoke admin", h.accessService.RevokeAdmin)
}

func (h *Access) mutate(w http.ResponseWriter, r *http.Request, name string, op func(ctx context.Context, actor, email string) error) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, model.ErrUnauthenticated)
		return
	}

	var req accessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := op(r.Context(), identity.Email, req.Email); err != nil {
		h.logger.Debug("Access handler: mutation rejected",
			"op", name,
			"actor", identity.Email,
			"error", err.Error())
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, okResponse{OK: true})
}
