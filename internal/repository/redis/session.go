package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

const (
	sessionPrefix      = "session:"
	emailSessionPrefix = "session:email:"
)

// SessionRepository keeps browser sessions as hashes with a TTL and indexes
// them per email so that all sessions of an account can be revoked at once.
type SessionRepository struct {
	client redis.UniversalClient
}

func NewSessionRepository(client redis.UniversalClient) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(id string) string { return sessionPrefix + id }
func emailSessionKey(email string) string { return emailSessionPrefix + email }

func (r *SessionRepository) Create(ctx context.Context, s model.Session) error {
	if !s.ExpiresAt.After(time.Now()) {
		return fmt.Errorf("%w: session already expired", model.ErrValidation)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, sessionKey(s.ID), map[string]any{
			"email":      s.Email,
			"subject":    s.Subject,
			"expires_at": s.ExpiresAt.Unix(),
		})
		pipe.ExpireAt(ctx, sessionKey(s.ID), s.ExpiresAt)
		pipe.SAdd(ctx, emailSessionKey(s.Email), s.ID)
		pipe.ExpireAt(ctx, emailSessionKey(s.Email), s.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (model.Session, error) {
	values, err := r.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	if len(values) == 0 {
		return model.Session{}, model.ErrNotFound
	}

	unix, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to parse session expiry: %w", err)
	}
	expiresAt := time.Unix(unix, 0)
	if !expiresAt.After(time.Now()) {
		return model.Session{}, model.ErrNotFound
	}

	return model.Session{
		ID:        id,
		Email:     values["email"],
		Subject:   values["subject"],
		ExpiresAt: expiresAt,
	}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	email, err := r.client.HGet(ctx, sessionKey(id), "email").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to get session owner: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(id))
		pipe.SRem(ctx, emailSessionKey(email), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) RevokeAll(ctx context.Context, email string) error {
	ids, err := r.client.SMembers(ctx, emailSessionKey(email)).Result()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, emailSessionKey(email))

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}
