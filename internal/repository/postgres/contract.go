package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

var _ model.ContractStore = (*ContractRepository)(nil)

const contractColumns = `id, type, user_id, customer_name, email, status,
	tank_size_litres, monthly_consumption_litres, market_price_per_unit, platform_price_per_unit,
	estimated_savings, estimated_payback_months, signer_name, terms_version, acceptance_id,
	approved_at, created_at, updated_at`

type ContractRepository struct {
	db *Connection
}

func NewContractRepository(db *Connection) *ContractRepository {
	return &ContractRepository{
		db: db,
	}
}

func scanContract(row pgx.Row) (model.Contract, error) {
	var c model.Contract
	err := row.Scan(
		&c.ID, &c.Type, &c.UserID, &c.CustomerName, &c.Email, &c.Status,
		&c.TankSizeLitres, &c.MonthlyConsumptionLitres, &c.MarketPricePerUnit, &c.PlatformPricePerUnit,
		&c.EstimatedSavings, &c.EstimatedPaybackMonths, &c.SignerName, &c.TermsVersion, &c.AcceptanceID,
		&c.ApprovedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *ContractRepository) Create(ctx context.Context, c model.Contract) (model.Contract, error) {
	query := `INSERT INTO contracts (id, type, user_id, customer_name, email, status,
				tank_size_litres, monthly_consumption_litres, market_price_per_unit, platform_price_per_unit,
				estimated_savings, estimated_payback_months, terms_version)
			  VALUES ($1, $2, $3, $4, $5, 'draft', $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + contractColumns

	saved, err := scanContract(r.db.QueryRow(ctx, query,
		c.ID, c.Type, c.UserID, c.CustomerName, c.Email,
		c.TankSizeLitres, c.MonthlyConsumptionLitres, c.MarketPricePerUnit, c.PlatformPricePerUnit,
		c.EstimatedSavings, c.EstimatedPaybackMonths, c.TermsVersion,
	))
	if err != nil {
		return model.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}

	return saved, nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`

	c, err := scanContract(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contract{}, model.ErrNotFound
		}
		return model.Contract{}, fmt.Errorf("failed to get contract by id: %w", err)
	}

	return c, nil
}

func (r *ContractRepository) Sign(ctx context.Context, a model.Acceptance) (model.Contract, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Contract{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var status model.ContractStatus
	err = tx.QueryRow(ctx, `SELECT status FROM contracts WHERE id = $1 FOR UPDATE`, a.ContractID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contract{}, model.ErrNotFound
		}
		return model.Contract{}, fmt.Errorf("failed to lock contract: %w", err)
	}
	if status == model.ContractStatusActive {
		return model.Contract{}, model.ErrConflict
	}

	insert := `INSERT INTO contract_acceptances (id, contract_id, accepted_name, accepted_email,
				client_ip, user_agent, terms_version, bot_check_passed, user_id)
			   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = tx.Exec(ctx, insert,
		a.ID, a.ContractID, a.AcceptedName, a.AcceptedEmail,
		a.ClientIP, a.UserAgent, a.TermsVersion, a.BotCheckPassed, a.UserID,
	)
	if err != nil {
		return model.Contract{}, fmt.Errorf("failed to insert acceptance: %w", err)
	}

	// an anonymous draft is bound to the signer's account
	update := `UPDATE contracts
			   SET status = 'signed', signer_name = $2, terms_version = $3, acceptance_id = $4,
				   user_id = COALESCE(user_id, $5), updated_at = now()
			   WHERE id = $1 AND status IN ('draft', 'signed')
			   RETURNING ` + contractColumns
	c, err := scanContract(tx.QueryRow(ctx, update, a.ContractID, a.AcceptedName, a.TermsVersion, a.ID, a.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contract{}, model.ErrConflict
		}
		return model.Contract{}, fmt.Errorf("failed to mark contract signed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Contract{}, fmt.Errorf("failed to commit signature: %w", err)
	}

	return c, nil
}

func (r *ContractRepository) Approve(ctx context.Context, id uuid.UUID) (model.Contract, error) {
	query := `UPDATE contracts
			  SET status = 'active', approved_at = now(), updated_at = now()
			  WHERE id = $1 AND status = 'signed'
			  RETURNING ` + contractColumns

	c, err := scanContract(r.db.QueryRow(ctx, query, id))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Contract{}, fmt.Errorf("failed to approve contract: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM contracts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return model.Contract{}, fmt.Errorf("failed to check contract existence: %w", err)
	}
	if !exists {
		return model.Contract{}, model.ErrNotFound
	}
	return model.Contract{}, model.ErrConflict
}

func (r *ContractRepository) LatestActive(ctx context.Context, owner model.Owner, contractType model.ContractType) (model.Contract, error) {
	var userID *string
	if owner.UserID != nil && *owner.UserID != "" {
		userID = owner.UserID
	}

	// NULL user id and empty email never match
	query := `SELECT ` + contractColumns + ` FROM contracts
			  WHERE (user_id = $1 OR (email = $2 AND $2 <> ''))
				AND type = $3 AND status IN ('signed', 'active')
			  ORDER BY created_at DESC
			  LIMIT 1`

	c, err := scanContract(r.db.QueryRow(ctx, query, userID, owner.Email, contractType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contract{}, model.ErrNotFound
		}
		return model.Contract{}, fmt.Errorf("failed to get latest active contract: %w", err)
	}

	return c, nil
}
