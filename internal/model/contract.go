package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ContractType enumerates contract kinds.
type ContractType string

const (
	ContractTypeBuy  ContractType = "buy"
	ContractTypeRent ContractType = "rent"
)

// Valid reports whether the type is known.
func (t ContractType) Valid() bool {
	return t == ContractTypeBuy || t == ContractTypeRent
}

// ContractStatus enumerates contract lifecycle states.
type ContractStatus string

const (
	ContractStatusDraft  ContractStatus = "draft"
	ContractStatusSigned ContractStatus = "signed"
	ContractStatusActive ContractStatus = "active"
)

// Contract is a fuel purchase or rental agreement.
type Contract struct {
	ID                       uuid.UUID
	Type                     ContractType
	UserID                   *string
	CustomerName             string
	Email                    string
	Status                   ContractStatus
	TankSizeLitres           *float64
	MonthlyConsumptionLitres *float64
	MarketPricePerUnit       *float64
	PlatformPricePerUnit     *float64
	EstimatedSavings         *float64
	EstimatedPaybackMonths   *float64
	SignerName               string
	TermsVersion             string
	AcceptanceID             *uuid.UUID
	ApprovedAt               *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Approved reports whether an administrator activated the contract.
func (c Contract) Approved() bool {
	return c.ApprovedAt != nil
}

// Acceptance is an append-only evidence record of a signature. UserID is set
// when the signer was authenticated.
type Acceptance struct {
	ID             uuid.UUID
	ContractID     uuid.UUID
	AcceptedName   string
	AcceptedEmail  string
	ClientIP       string
	UserAgent      string
	TermsVersion   string
	BotCheckPassed bool
	UserID         *string
	CreatedAt      time.Time
}

// Owner selects contracts matching either the user id or the email.
type Owner struct {
	UserID *string
	Email  string
}

// DraftParams contains parameters to create a contract draft.
type DraftParams struct {
	Type                     ContractType
	CustomerName             string
	Email                    string
	TankSizeLitres           *float64
	MonthlyConsumptionLitres *float64
	MarketPricePerUnit       *float64
	PlatformPricePerUnit     *float64
	EstimatedSavings         *float64
	EstimatedPaybackMonths   *float64
}

// SignParams contains parameters to sign a contract.
type SignParams struct {
	ContractID    uuid.UUID
	SignerName    string
	SignerEmail   string
	TermsVersion  string
	BotCheckToken string
	ClientIP      string
	UserAgent     string
	Identity      *Identity
}

// SignResult is returned after a successful signature.
type SignResult struct {
	AcceptanceID uuid.UUID
	Emailed      bool
}

// ApproveResult is returned after a successful approval.
type ApproveResult struct {
	Emailed bool
}

// ContractStore persists contracts and acceptances.
type ContractStore interface {
	Create(ctx context.Context, contract Contract) (Contract, error)
	GetByID(ctx context.Context, id uuid.UUID) (Contract, error)
	// Sign records the acceptance and moves a draft or signed contract to signed
	// in one transaction, binding acceptance.UserID to a contract without one.
	// Returns ErrConflict for active contracts.
	Sign(ctx context.Context, acceptance Acceptance) (Contract, error)
	// Approve moves a signed contract to active. Returns ErrConflict when the
	// contract is not signed.
	Approve(ctx context.Context, id uuid.UUID) (Contract, error)
	LatestActive(ctx context.Context, owner Owner, contractType ContractType) (Contract, error)
}
