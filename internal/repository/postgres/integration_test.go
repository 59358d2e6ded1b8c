//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/fuelsupply-server/internal/model"
	repo "github.com/dtroode/fuelsupply-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "fuelsupply_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/fuelsupply_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConnection(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func ptr[T any](v T) *T { return &v }

func TestAccessRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	access := repo.NewAccessRepository(connect(t))
	email := "user-" + uuid.NewString()[:8] + "@example.com"

	flags, err := access.Lookup(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, model.AccessFlags{}, flags)

	require.NoError(t, access.Allow(ctx, email, "admin@example.com"))
	require.NoError(t, access.Allow(ctx, email, "other-admin@example.com"))
	require.NoError(t, access.Block(ctx, email))
	require.NoError(t, access.Block(ctx, email))

	flags, err = access.Lookup(ctx, email)
	require.NoError(t, err)
	assert.True(t, flags.Allowed)
	assert.True(t, flags.Blocked)
	assert.False(t, flags.Admin)

	entries, err := access.List(ctx)
	require.NoError(t, err)
	var found *model.AccessEntry
	for i := range entries {
		if entries[i].Email == email {
			found = &entries[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "other-admin@example.com", found.ApprovedBy)

	require.NoError(t, access.Unblock(ctx, email))
	require.NoError(t, access.AddAdmin(ctx, email))
	flags, err = access.Lookup(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, model.AccessFlags{Admin: true, Allowed: true}, flags)

	require.NoError(t, access.RemoveAdmin(ctx, email))
	require.NoError(t, access.Disallow(ctx, email))
	flags, err = access.Lookup(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, model.AccessFlags{}, flags)
}

func TestContractRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	contracts := repo.NewContractRepository(connect(t))
	email := "buyer-" + uuid.NewString()[:8] + "@example.com"

	draft, err := contracts.Create(ctx, model.Contract{
		ID:             uuid.New(),
		Type:           model.ContractTypeBuy,
		CustomerName:   "Ana",
		Email:          email,
		TankSizeLitres: ptr(5000.0),
		TermsVersion:   "v1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusDraft, draft.Status)
	assert.Nil(t, draft.UserID)

	_, err = contracts.LatestActive(ctx, model.Owner{Email: email}, model.ContractTypeBuy)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = contracts.Approve(ctx, draft.ID)
	assert.ErrorIs(t, err, model.ErrConflict)

	acceptance := model.Acceptance{
		ID:            uuid.New(),
		ContractID:    draft.ID,
		AcceptedName:  "Ana Silva",
		AcceptedEmail: email,
		TermsVersion:  "v1",
	}
	signed, err := contracts.Sign(ctx, acceptance)
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusSigned, signed.Status)
	assert.Equal(t, "Ana Silva", signed.SignerName)
	require.NotNil(t, signed.AcceptanceID)
	assert.Equal(t, acceptance.ID, *signed.AcceptanceID)

	latest, err := contracts.LatestActive(ctx, model.Owner{Email: email}, model.ContractTypeBuy)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, latest.ID)
	assert.False(t, latest.Approved())

	active, err := contracts.Approve(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusActive, active.Status)
	assert.True(t, active.Approved())

	_, err = contracts.Approve(ctx, draft.ID)
	assert.ErrorIs(t, err, model.ErrConflict)

	acceptance.ID = uuid.New()
	_, err = contracts.Sign(ctx, acceptance)
	assert.ErrorIs(t, err, model.ErrConflict)

	_, err = contracts.Approve(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = contracts.Sign(ctx, model.Acceptance{ID: uuid.New(), ContractID: uuid.New(), TermsVersion: "v1"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestContractRepository_SignBindsAnonymousDraft(t *testing.T) {
	ctx := context.Background()
	contracts := repo.NewContractRepository(connect(t))
	email := "anon-" + uuid.NewString()[:8] + "@example.com"
	subject := "sub-" + uuid.NewString()[:8]

	draft, err := contracts.Create(ctx, model.Contract{
		ID: uuid.New(), Type: model.ContractTypeBuy, CustomerName: "Ana", Email: email, TermsVersion: "v1",
	})
	require.NoError(t, err)
	require.Nil(t, draft.UserID)

	signed, err := contracts.Sign(ctx, model.Acceptance{
		ID: uuid.New(), ContractID: draft.ID, AcceptedName: "Ana", AcceptedEmail: email,
		TermsVersion: "v1", UserID: &subject,
	})
	require.NoError(t, err)
	require.NotNil(t, signed.UserID)
	assert.Equal(t, subject, *signed.UserID)

	owners := []model.Owner{
		{UserID: &subject, Email: email},
		{UserID: &subject},
		{Email: email},
	}
	for _, owner := range owners {
		latest, err := contracts.LatestActive(ctx, owner, model.ContractTypeBuy)
		require.NoError(t, err)
		assert.Equal(t, draft.ID, latest.ID)
	}

	other := "sub-" + uuid.NewString()[:8]
	_, err = contracts.Sign(ctx, model.Acceptance{
		ID: uuid.New(), ContractID: draft.ID, AcceptedName: "Ana", AcceptedEmail: email,
		TermsVersion: "v1", UserID: &other,
	})
	require.NoError(t, err)
	bound, err := contracts.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, subject, *bound.UserID)

	_, err = contracts.LatestActive(ctx, model.Owner{UserID: &other, Email: "nobody@example.com"}, model.ContractTypeBuy)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestContractRepository_ConcurrentApprove(t *testing.T) {
	ctx := context.Background()
	contracts := repo.NewContractRepository(connect(t))

	c, err := contracts.Create(ctx, model.Contract{
		ID: uuid.New(), Type: model.ContractTypeRent, CustomerName: "Bo", Email: "bo@example.com",
	})
	require.NoError(t, err)
	_, err = contracts.Sign(ctx, model.Acceptance{
		ID: uuid.New(), ContractID: c.ID, AcceptedName: "Bo", AcceptedEmail: "bo@example.com", TermsVersion: "v1",
	})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := contracts.Approve(ctx, c.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, model.ErrConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 4, conflicts)
}

func TestOrderRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	orders := repo.NewOrderRepository(connect(t))

	o, err := orders.Create(ctx, model.Order{
		ID:           uuid.New(),
		UserID:       ptr("sub-1"),
		Email:        "buyer@example.com",
		CustomerName: "Ana",
		Litres:       decimal.RequireFromString("1200.50"),
		UnitPrice:    decimal.RequireFromString("1.2345"),
		Currency:     "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, o.Status)
	assert.True(t, o.Litres.Equal(decimal.RequireFromString("1200.5")))

	require.NoError(t, orders.SetCheckoutSession(ctx, o.ID, "cs_test_1"))

	paid, err := orders.MarkPaid(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, paid.Status)
	assert.Equal(t, "cs_test_1", paid.CheckoutSessionID)
	assert.NotNil(t, paid.PaidAt)

	_, err = orders.MarkPaid(ctx, o.ID)
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.ErrorIs(t, orders.MarkFailed(ctx, o.ID), model.ErrConflict)

	_, err = orders.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, orders.SetCheckoutSession(ctx, uuid.New(), "x"), model.ErrNotFound)
}
