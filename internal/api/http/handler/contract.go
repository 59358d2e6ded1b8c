package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

// ContractService drives the contract lifecycle.
type ContractService interface {
	CreateDraft(ctx context.Context, identity *model.Identity, p model.DraftParams) (uuid.UUID, error)
	Sign(ctx context.Context, p model.SignParams) (model.SignResult, error)
	Approve(ctx context.Context, contractID uuid.UUID, approver model.Identity) (model.ApproveResult, error)
	LatestActiveFor(ctx context.Context, owner model.Owner, contractType model.ContractType) (model.Contract, error)
	Get(ctx context.Context, contractID uuid.UUID, identity model.Identity) (model.Contract, error)
}

// Contract handles contract endpoints.
type Contract struct {
	contractService ContractService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// NewContract creates a new Contract handler.
func NewContract(contractService ContractService, contextManager model.ContextManager, logger *logger.Logger) *Contract {
	return &Contract{
		contractService: contractService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

type draftRequest struct {
	Type                     model.ContractType `json:"type"`
	CustomerName             string             `json:"customer_name"`
	Email                    string             `json:"email"`
	TankSizeLitres           *float64           `json:"tank_size_litres"`
	MonthlyConsumptionLitres *float64           `json:"monthly_consumption_litres"`
	MarketPricePerUnit       *float64           `json:"market_price_per_unit"`
	PlatformPricePerUnit     *float64           `json:"platform_price_per_unit"`
	EstimatedSavings         *float64           `json:"estimated_savings"`
	EstimatedPaybackMonths   *float64           `json:"estimated_payback_months"`
}

type draftResponse struct {
	ID uuid.UUID `json:"id"`
}

type signRequest struct {
	SignerName    string `json:"signer_name"`
	SignerEmail   string `json:"signer_email"`
	TermsVersion  string `json:"terms_version"`
	BotCheckToken string `json:"bot_check_token"`
}

type signResponse struct {
	OK           bool      `json:"ok"`
	AcceptanceID uuid.UUID `json:"acceptance_id"`
	Emailed      bool      `json:"emailed"`
}

type approveResponse struct {
	OK      bool `json:"ok"`
	Emailed bool `json:"emailed"`
}

type latestResponse struct {
	Exists   bool                 `json:"exists"`
	Status   model.ContractStatus `json:"status,omitempty"`
	Approved *bool                `json:"approved,omitempty"`
	ID       *uuid.UUID           `json:"id,omitempty"`
}

type contractResponse struct {
	ID                       uuid.UUID            `json:"id"`
	Type                     model.ContractType   `json:"type"`
	Status                   model.ContractStatus `json:"status"`
	CustomerName             string               `json:"customer_name"`
	Email                    string               `json:"email"`
	TankSizeLitres           *float64             `json:"tank_size_litres,omitempty"`
	MonthlyConsumptionLitres *float64             `json:"monthly_consumption_litres,omitempty"`
	MarketPricePerUnit       *float64             `json:"market_price_per_unit,omitempty"`
	PlatformPricePerUnit     *float64             `json:"platform_price_per_unit,omitempty"`
	EstimatedSavings         *float64             `json:"estimated_savings,omitempty"`
	EstimatedPaybackMonths   *float64             `json:"estimated_payback_months,omitempty"`
	SignerName               string               `json:"signer_name,omitempty"`
	TermsVersion             string               `json:"terms_version"`
	AcceptanceID             *uuid.UUID           `json:"acceptance_id,omitempty"`
	Approved                 bool                 `json:"approved"`
	ApprovedAt               *time.Time           `json:"approved_at,omitempty"`
	CreatedAt                time.Time            `json:"created_at"`
	UpdatedAt                time.Time            `json:"updated_at"`
}

func toContractResponse(c model.Contract) contractResponse {
	return contractResponse{
		ID:                       c.ID,
		Type:                     c.Type,
		Status:                   c.Status,
		CustomerName:             c.CustomerName,
		Email:                    c.Email,
		TankSizeLitres:           c.TankSizeLitres,
		MonthlyConsumptionLitres: c.MonthlyConsumptionLitres,
		MarketPricePerUnit:       c.MarketPricePerUnit,
		PlatformPricePerUnit:     c.PlatformPricePerUnit,
		EstimatedSavings:         c.EstimatedSavings,
		EstimatedPaybackMonths:   c.EstimatedPaybackMonths,
		SignerName:               c.SignerName,
		TermsVersion:             c.TermsVersion,
		AcceptanceID:             c.AcceptanceID,
		Approved:                 c.Approved(),
		ApprovedAt:               c.ApprovedAt,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}

// optionalIdentity returns the caller identity or nil for anonymous requests.
func optionalIdentity(ctx context.Context, cm model.ContextManager) *model.Identity {
	identity, ok := cm.GetIdentityFromContext(ctx)
	if !ok {
		return nil
	}
	return &identity
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid contract id", model.ErrValidation)
	}
	return id, nil
}

// CreateDraft stores a new draft for the caller or an anonymous customer.
func (h *Contract) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	id, err := h.contractService.CreateDraft(r.Context(), optionalIdentity(r.Context(), h.contextManager), model.DraftParams{
		Type:                     model.ContractType(strings.ToLower(string(req.Type))),
		CustomerName:             req.CustomerName,
		Email:                    req.Email,
		TankSizeLitres:           req.TankSizeLitres,
		MonthlyConsumptionLitres: req.MonthlyConsumptionLitres,
		MarketPricePerUnit:       req.MarketPricePerUnit,
		PlatformPricePerUnit:     req.PlatformPricePerUnit,
		EstimatedSavings:         req.EstimatedSavings,
		EstimatedPaybackMonths:   req.EstimatedPaybackMonths,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, draftResponse{ID: id})
}

// Sign captures the signer's acceptance.
func (h *Contract) Sign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req signRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.contractService.Sign(r.Context(), model.SignParams{
		ContractID:    id,
		SignerName:    req.SignerName,
		SignerEmail:   req.SignerEmail,
		TermsVersion:  req.TermsVersion,
		BotCheckToken: req.BotCheckToken,
		ClientIP:      clientIP(r),
		UserAgent:     r.UserAgent(),
		Identity:      optionalIdentity(r.Context(), h.contextManager),
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, signResponse{OK: true, AcceptanceID: res.AcceptanceID, Emailed: res.Emailed})
}

// Approve activates a signed contract.
func (h *Contract) Approve(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, model.ErrUnauthenticated)
		return
	}

	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.contractService.Approve(r.Context(), id, identity)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, approveResponse{OK: true, Emailed: res.Emailed})
}

// Latest answers whether the owner already has a signed or active contract
// of the given type. The caller's identity takes precedence over ?email.
func (h *Contract) Latest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	owner := model.Owner{Email: q.Get("email")}
	if identity := optionalIdentity(r.Context(), h.contextManager); identity != nil {
		owner.Email = identity.Email
		if identity.Subject != "" {
			subject := identity.Subject
			owner.UserID = &subject
		}
	}

	c, err := h.contractService.LatestActiveFor(r.Context(), owner, model.ContractType(strings.ToLower(q.Get("type"))))
	if errors.Is(err, model.ErrNotFound) {
		WriteJSON(w, http.StatusOK, latestResponse{Exists: false})
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	approved := c.Approved()
	WriteJSON(w, http.StatusOK, latestResponse{
		Exists:   true,
		Status:   c.Status,
		Approved: &approved,
		ID:       &c.ID,
	})
}

// Get returns a contract to its owner or an administrator.
func (h *Contract) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		WriteError(w, model.ErrUnauthenticated)
		return
	}

	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	c, err := h.contractService.Get(r.Context(), id, identity)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toContractResponse(c))
}
