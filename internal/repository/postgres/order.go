package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

var _ model.OrderStore = (*OrderRepository)(nil)

const orderColumns = `id, user_id, email, customer_name, litres::text, unit_price::text, currency,
	delivery_address, status, checkout_session_id, created_at, paid_at`

type OrderRepository struct {
	db *Connection
}

func NewOrderRepository(db *Connection) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Email, &o.CustomerName, &o.Litres, &o.UnitPrice, &o.Currency,
		&o.DeliveryAddress, &o.Status, &o.CheckoutSessionID, &o.CreatedAt, &o.PaidAt,
	)
	return o, err
}

func (r *OrderRepository) Create(ctx context.Context, o model.Order) (model.Order, error) {
	query := `INSERT INTO orders (id, user_id, email, customer_name, litres, unit_price, currency, delivery_address, status)
			  VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, 'pending')
			  RETURNING ` + orderColumns

	saved, err := scanOrder(r.db.QueryRow(ctx, query,
		o.ID, o.UserID, o.Email, o.CustomerName, o.Litres.String(), o.UnitPrice.String(), o.Currency, o.DeliveryAddress,
	))
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	return saved, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, model.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("failed to get order by id: %w", err)
	}

	return o, nil
}

func (r *OrderRepository) SetCheckoutSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET checkout_session_id = $2 WHERE id = $1`, id, sessionID)
	if err != nil {
		return fmt.Errorf("failed to set checkout session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) MarkPaid(ctx context.Context, id uuid.UUID) (model.Order, error) {
	query := `UPDATE orders SET status = 'paid', paid_at = now()
			  WHERE id = $1 AND status = 'pending'
			  RETURNING ` + orderColumns

	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Order{}, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return model.Order{}, r.missingOrConflict(ctx, id)
}

func (r *OrderRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = 'failed' WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return fmt.Errorf("failed to mark order failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *OrderRepository) missingOrConflict(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check order existence: %w", err)
	}
	if !exists {
		return model.ErrNotFound
	}
	return model.ErrConflict
}
