package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dtroode/fuelsupply-server/internal/logger"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

// Contract drives contracts through draft, signed and active.
type Contract struct {
	store        model.ContractStore
	access       accessGate
	bot          model.BotVerifier
	documents    *Document
	events       model.EventPublisher
	termsVersion string
	logger       *logger.Logger
}

// NewContract creates the contract service. bot and events may be nil.
func NewContract(
	store model.ContractStore,
	access accessGate,
	bot model.BotVerifier,
	documents *Document,
	events model.EventPublisher,
	termsVersion string,
	logger *logger.Logger,
) *Contract {
	return &Contract{
		store:        store,
		access:       access,
		bot:          bot,
		documents:    documents,
		events:       events,
		termsVersion: termsVersion,
		logger:       logger,
	}
}

// gateEmail picks the email the access gate is applied to.
func gateEmail(identity *model.Identity, supplied string) string {
	if identity != nil && identity.Email != "" {
		return identity.Email
	}
	return supplied
}

func validNumbers(values ...*float64) bool {
	for _, v := range values {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return false
		}
	}
	return true
}

// CreateDraft stores a new draft contract and returns its id.
func (s *Contract) CreateDraft(ctx context.Context, identity *model.Identity, p model.DraftParams) (uuid.UUID, error) {
	ctx, span := tracer.Start(ctx, "Contract.Service.CreateDraft")
	defer span.End()

	name := strings.TrimSpace(p.CustomerName)
	email := model.NormalizeEmail(p.Email)
	if name == "" || email == "" {
		return uuid.Nil, fail(span, fmt.Errorf("%w: customer name and email are required", model.ErrValidation))
	}
	if !model.ValidEmail(email) {
		return uuid.Nil, fail(span, fmt.Errorf("%w: invalid email", model.ErrValidation))
	}
	if !p.Type.Valid() {
		return uuid.Nil, fail(span, fmt.Errorf("%w: contract type must be buy or rent", model.ErrValidation))
	}
	if !validNumbers(p.TankSizeLitres, p.MonthlyConsumptionLitres, p.MarketPricePerUnit,
		p.PlatformPricePerUnit, p.EstimatedSavings, p.EstimatedPaybackMonths) {
		return uuid.Nil, fail(span, fmt.Errorf("%w: numeric fields must be finite", model.ErrValidation))
	}

	if _, err := s.access.Authorize(ctx, gateEmail(identity, email)); err != nil {
		return uuid.Nil, fail(span, err)
	}

	contract := model.Contract{
		ID:                       uuid.New(),
		Type:                     p.Type,
		CustomerName:             name,
		Email:                    email,
		Status:                   model.ContractStatusDraft,
		TankSizeLitres:           p.TankSizeLitres,
		MonthlyConsumptionLitres: p.MonthlyConsumptionLitres,
		MarketPricePerUnit:       p.MarketPricePerUnit,
		PlatformPricePerUnit:     p.PlatformPricePerUnit,
		EstimatedSavings:         p.EstimatedSavings,
		EstimatedPaybackMonths:   p.EstimatedPaybackMonths,
		TermsVersion:             s.termsVersion,
	}
	if identity != nil && identity.Subject != "" {
		subject := identity.Subject
		contract.UserID = &subject
	}

	saved, err := s.store.Create(ctx, contract)
	if err != nil {
		s.logger.Error("Contract service: failed to create draft",
			"email", email,
			"error", err.Error())
		return uuid.Nil, fail(span, storeError("create contract", err))
	}

	s.logger.Info("Contract service: draft created",
		"contract_id", saved.ID,
		"type", saved.Type,
		"email", email)

	return saved.ID, nil
}

// Sign records an acceptance and moves the contract to signed. The signed
// copy is emailed to the signer after the state change is committed.
func (s *Contract) Sign(ctx context.Context, p model.SignParams) (model.SignResult, error) {
	ctx, span := tracer.Start(ctx, "Contract.Service.Sign")
	defer span.End()
	span.SetAttributes(attribute.String("contract_id", p.ContractID.String()))

	name := strings.TrimSpace(p.SignerName)
	email := model.NormalizeEmail(p.SignerEmail)
	if name == "" || email == "" {
		return model.SignResult{}, fail(span, fmt.Errorf("%w: signer name and email are required", model.ErrValidation))
	}

	if _, err := s.access.Authorize(ctx, gateEmail(p.Identity, email)); err != nil {
		return model.SignResult{}, fail(span, err)
	}

	current, err := s.store.GetByID(ctx, p.ContractID)
	if err != nil {
		return model.SignResult{}, fail(span, storeError("get contract", err))
	}
	if current.Status == model.ContractStatusActive {
		return model.SignResult{}, fail(span, fmt.Errorf("%w: contract is already active", model.ErrConflict))
	}

	terms := strings.TrimSpace(p.TermsVersion)
	if terms == "" {
		terms = s.termsVersion
	}

	acceptance := model.Acceptance{
		ID:             uuid.New(),
		ContractID:     p.ContractID,
		AcceptedName:   name,
		AcceptedEmail:  email,
		ClientIP:       p.ClientIP,
		UserAgent:      p.UserAgent,
		TermsVersion:   terms,
		BotCheckPassed: s.verifyHuman(ctx, p.BotCheckToken, p.ClientIP),
		CreatedAt:      time.Now().UTC(),
	}
	if p.Identity != nil && p.Identity.Subject != "" {
		subject := p.Identity.Subject
		acceptance.UserID = &subject
	}

	signed, err := s.store.Sign(ctx, acceptance)
	if err != nil {
		if !errors.Is(err, model.ErrConflict) && !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Contract service: failed to sign contract",
				"contract_id", p.ContractID,
				"error", err.Error())
		}
		return model.SignResult{}, fail(span, storeError("sign contract", err))
	}

	s.logger.Info("Contract service: contract signed",
		"contract_id", signed.ID,
		"acceptance_id", acceptance.ID,
		"bot_check_passed", acceptance.BotCheckPassed)

	emailed := s.documents.SendContract(ctx, signed, &acceptance, email)
	publish(ctx, s.events, s.logger, model.Event{
		Type: model.EventContractSigned,
		Key:  signed.ID.String(),
		Payload: map[string]any{
			"contract_id":   signed.ID,
			"acceptance_id": acceptance.ID,
			"email":         email,
			"type":          signed.Type,
		},
	})

	return model.SignResult{AcceptanceID: acceptance.ID, Emailed: emailed}, nil
}

// verifyHuman never fails; an unavailable verifier counts as not passed.
func (s *Contract) verifyHuman(ctx context.Context, token, remoteIP string) bool {
	if s.bot == nil || token == "" {
		return false
	}
	ok, err := s.bot.Verify(ctx, token, remoteIP)
	if err != nil {
		s.logger.Warn("Contract service: bot check unavailable", "error", err.Error())
		return false
	}
	return ok
}

// Approve activates a signed contract. Only admins may approve.
func (s *Contract) Approve(ctx context.Context, contractID uuid.UUID, approver model.Identity) (model.ApproveResult, error) {
	ctx, span := tracer.Start(ctx, "Contract.Service.Approve")
	defer span.End()
	span.SetAttributes(attribute.String("contract_id", contractID.String()))

	if err := s.access.RequireAdmin(ctx, approver.Email); err != nil {
		return model.ApproveResult{}, fail(span, err)
	}

	approved, err := s.store.Approve(ctx, contractID)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			s.logger.Info("Contract service: contract not in signed state", "contract_id", contractID)
		}
		return model.ApproveResult{}, fail(span, storeError("approve contract", err))
	}

	s.logger.Info("Contract service: contract approved",
		"contract_id", approved.ID,
		"approver", approver.Email)

	emailed := s.documents.SendContract(ctx, approved, nil, approved.Email)
	publish(ctx, s.events, s.logger, model.Event{
		Type: model.EventContractApproved,
		Key:  approved.ID.String(),
		Payload: map[string]any{
			"contract_id": approved.ID,
			"approved_by": approver.Email,
			"email":       approved.Email,
		},
	})

	return model.ApproveResult{Emailed: emailed}, nil
}

// LatestActiveFor returns the most recent signed or active contract of the
// given type for owner.
func (s *Contract) LatestActiveFor(ctx context.Context, owner model.Owner, contractType model.ContractType) (model.Contract, error) {
	ctx, span := tracer.Start(ctx, "Contract.Service.LatestActiveFor")
	defer span.End()

	if !contractType.Valid() {
		return model.Contract{}, fail(span, fmt.Errorf("%w: contract type must be buy or rent", model.ErrValidation))
	}
	owner.Email = model.NormalizeEmail(owner.Email)
	if (owner.UserID == nil || *owner.UserID == "") && owner.Email == "" {
		return model.Contract{}, fail(span, fmt.Errorf("%w: user id or email is required", model.ErrValidation))
	}

	c, err := s.store.LatestActive(ctx, owner, contractType)
	if err != nil {
		return model.Contract{}, fail(span, storeError("get latest contract", err))
	}
	return c, nil
}

// Get returns a contract to its owner or to an admin.
func (s *Contract) Get(ctx context.Context, contractID uuid.UUID, identity model.Identity) (model.Contract, error) {
	ctx, span := tracer.Start(ctx, "Contract.Service.Get")
	defer span.End()

	class, err := s.access.Classify(ctx, identity.Email)
	if err != nil {
		return model.Contract{}, fail(span, err)
	}
	if class == model.ClassificationBlocked {
		return model.Contract{}, fail(span, model.ErrBlocked)
	}

	c, err := s.store.GetByID(ctx, contractID)
	if err != nil {
		return model.Contract{}, fail(span, storeError("get contract", err))
	}

	owner := c.Email == identity.Email ||
		(c.UserID != nil && identity.Subject != "" && *c.UserID == identity.Subject)
	if !owner && class != model.ClassificationAdmin {
		return model.Contract{}, fail(span, model.ErrForbidden)
	}
	return c, nil
}
