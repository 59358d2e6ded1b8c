package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

var _ model.AccessStore = (*AccessRepository)(nil)

type AccessRepository struct {
	db *Connection
}

func NewAccessRepository(db *Connection) *AccessRepository {
	return &AccessRepository{
		db: db,
	}
}

func (r *AccessRepository) Lookup(ctx context.Context, email string) (model.AccessFlags, error) {
	query := `SELECT
				EXISTS (SELECT 1 FROM blocked_emails WHERE email = $1),
				EXISTS (SELECT 1 FROM admin_emails WHERE email = $1),
				EXISTS (SELECT 1 FROM allowed_emails WHERE email = $1)`

	var flags model.AccessFlags
	err := r.db.QueryRow(ctx, query, email).Scan(&flags.Blocked, &flags.Admin, &flags.Allowed)
	if err != nil {
		return model.AccessFlags{}, fmt.Errorf("failed to lookup access flags: %w", err)
	}

	return flags, nil
}

func (r *AccessRepository) Allow(ctx context.Context, email, approvedBy string) error {
	query := `INSERT INTO allowed_emails (email, approved_by)
			  VALUES ($1, $2)
			  ON CONFLICT (email) DO UPDATE SET approved_by = EXCLUDED.approved_by, updated_at = now()`

	if _, err := r.db.Exec(ctx, query, email, approvedBy); err != nil {
		return fmt.Errorf("failed to allow email: %w", err)
	}
	return nil
}

func (r *AccessRepository) Disallow(ctx context.Context, email string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM allowed_emails WHERE email = $1`, email); err != nil {
		return fmt.Errorf("failed to disallow email: %w", err)
	}
	return nil
}

func (r *AccessRepository) Block(ctx context.Context, email string) error {
	query := `INSERT INTO blocked_emails (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("failed to block email: %w", err)
	}
	return nil
}

func (r *AccessRepository) Unblock(ctx context.Context, email string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM blocked_emails WHERE email = $1`, email); err != nil {
		return fmt.Errorf("failed to unblock email: %w", err)
	}
	return nil
}

func (r *AccessRepository) AddAdmin(ctx context.Context, email string) error {
	query := `INSERT INTO admin_emails (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("failed to add admin: %w", err)
	}
	return nil
}

func (r *AccessRepository) RemoveAdmin(ctx context.Context, email string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM admin_emails WHERE email = $1`, email); err != nil {
		return fmt.Errorf("failed to remove admin: %w", err)
	}
	return nil
}

func (r *AccessRepository) List(ctx context.Context) ([]model.AccessEntry, error) {
	query := `SELECT e.email,
					 b.email IS NOT NULL,
					 ad.email IS NOT NULL,
					 al.email IS NOT NULL,
					 COALESCE(al.approved_by, ''),
					 COALESCE(al.updated_at, b.created_at, ad.created_at)
			  FROM (
					SELECT email FROM blocked_emails
					UNION SELECT email FROM allowed_emails
					UNION SELECT email FROM admin_emails
			  ) e
			  LEFT JOIN blocked_emails b ON b.email = e.email
			  LEFT JOIN admin_emails ad ON ad.email = e.email
			  LEFT JOIN allowed_emails al ON al.email = e.email
			  ORDER BY e.email`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list access entries: %w", err)
	}
	defer rows.Close()

	var entries []model.AccessEntry
	for rows.Next() {
		var e model.AccessEntry
		if err := rows.Scan(&e.Email, &e.Blocked, &e.Admin, &e.Allowed, &e.ApprovedBy, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan access entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate access entries: %w", err)
	}

	return entries, nil
}
