package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

// memAccess is an in-memory AccessStore.
type memAccess struct {
	mu      sync.Mutex
	blocked map[string]bool
	admins  map[string]bool
	allowed map[string]string
}

func newMemAccess() *memAccess {
	return &memAccess{blocked: map[string]bool{}, admins: map[string]bool{}, allowed: map[string]string{}}
}

func (m *memAccess) Lookup(_ context.Context, email string) (model.AccessFlags, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, allowed := m.allowed[email]
	return model.AccessFlags{Blocked: m.blocked[email], Admin: m.admins[email], Allowed: allowed}, nil
}

func (m *memAccess) Allow(_ context.Context, email, by string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allowed[email] = by
	return nil
}

func (m *memAccess) Disallow(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.allowed, email)
	return nil
}

func (m *memAccess) Block(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocked[email] = true
	return nil
}

func (m *memAccess) Unblock(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blocked, email)
	return nil
}

func (m *memAccess) AddAdmin(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[email] = true
	return nil
}

func (m *memAccess) RemoveAdmin(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.admins, email)
	return nil
}

func (m *memAccess) List(_ context.Context) ([]model.AccessEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]*model.AccessEntry{}
	get := func(e string) *model.AccessEntry {
		if seen[e] == nil {
			seen[e] = &model.AccessEntry{Email: e}
		}
		return seen[e]
	}
	for e := range m.blocked {
		get(e).Blocked = true
	}
	for e := range m.admins {
		get(e).Admin = true
	}
	for e, by := range m.allowed {
		get(e).Allowed, get(e).ApprovedBy = true, by
	}
	out := make([]model.AccessEntry, 0, len(seen))
	for _, e := range seen {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// memContracts is an in-memory ContractStore.
type memContracts struct {
	mu          sync.Mutex
	contracts   map[uuid.UUID]model.Contract
	acceptances []model.Acceptance
	clock       time.Time
}

func newMemContracts() *memContracts {
	return &memContracts{contracts: map[uuid.UUID]model.Contract{}, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memContracts) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memContracts) Create(_ context.Context, c model.Contract) (model.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.Status = model.ContractStatusDraft
	c.CreatedAt = m.tick()
	c.UpdatedAt = c.CreatedAt
	m.contracts[c.ID] = c
	return c, nil
}

func (m *memContracts) GetByID(_ context.Context, id uuid.UUID) (model.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contracts[id]
	if !ok {
		return model.Contract{}, model.ErrNotFound
	}
	return c, nil
}

func (m *memContracts) Sign(_ context.Context, a model.Acceptance) (model.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contracts[a.ContractID]
	if !ok {
		return model.Contract{}, model.ErrNotFound
	}
	if c.Status == model.ContractStatusActive {
		return model.Contract{}, model.ErrConflict
	}
	m.acceptances = append(m.acceptances, a)
	id := a.ID
	c.Status, c.SignerName, c.TermsVersion, c.AcceptanceID = model.ContractStatusSigned, a.AcceptedName, a.TermsVersion, &id
	if c.UserID == nil && a.UserID != nil {
		userID := *a.UserID
		c.UserID = &userID
	}
	c.UpdatedAt = m.tick()
	m.contracts[c.ID] = c
	return c, nil
}

func (m *memContracts) Approve(_ context.Context, id uuid.UUID) (model.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contracts[id]
	if !ok {
		return model.Contract{}, model.ErrNotFound
	}
	if c.Status != model.ContractStatusSigned {
		return model.Contract{}, model.ErrConflict
	}
	now := m.tick()
	c.Status, c.ApprovedAt, c.UpdatedAt = model.ContractStatusActive, &now, now
	m.contracts[id] = c
	return c, nil
}

func (m *memContracts) LatestActive(_ context.Context, owner model.Owner, t model.ContractType) (model.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *model.Contract
	for _, c := range m.contracts {
		if c.Type != t || c.Status == model.ContractStatusDraft {
			continue
		}
		byUser := owner.UserID != nil && *owner.UserID != "" && c.UserID != nil && *c.UserID == *owner.UserID
		byEmail := owner.Email != "" && c.Email == owner.Email
		if !byUser && !byEmail {
			continue
		}
		if best == nil || c.CreatedAt.After(best.CreatedAt) {
			c := c
			best = &c
		}
	}
	if best == nil {
		return model.Contract{}, model.ErrNotFound
	}
	return *best, nil
}
