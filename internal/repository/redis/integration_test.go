//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/fuelsupply-server/internal/model"
	repo "github.com/dtroode/fuelsupply-server/internal/repository/redis"
)

var redisURL string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(time.Minute),
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
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		panic(err)
	}
	redisURL = fmt.Sprintf("redis://%s:%s/0", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newRepo(t *testing.T) *repo.SessionRepository {
	t.Helper()
	client, err := repo.Connect(context.Background(), redisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return repo.NewSessionRepository(client)
}

func TestSessionRepository_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	sessions := newRepo(t)

	s := model.Session{ID: "s-1", Email: "ana@example.com", Subject: "sub-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, sessions.Create(ctx, s))

	got, err := sessions.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "sub-1", got.Subject)
	assert.Equal(t, s.ExpiresAt.Unix(), got.ExpiresAt.Unix())

	require.NoError(t, sessions.Delete(ctx, "s-1"))
	require.NoError(t, sessions.Delete(ctx, "s-1"))

	_, err = sessions.Get(ctx, "s-1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionRepository_RevokeAll(t *testing.T) {
	ctx := context.Background()
	sessions := newRepo(t)
	exp := time.Now().Add(time.Hour)

	require.NoError(t, sessions.Create(ctx, model.Session{ID: "a", Email: "bo@example.com", ExpiresAt: exp}))
	require.NoError(t, sessions.Create(ctx, model.Session{ID: "b", Email: "bo@example.com", ExpiresAt: exp}))
	require.NoError(t, sessions.Create(ctx, model.Session{ID: "c", Email: "cy@example.com", ExpiresAt: exp}))

	require.NoError(t, sessions.RevokeAll(ctx, "bo@example.com"))

	for _, id := range []string{"a", "b"} {
		_, err := sessions.Get(ctx, id)
		assert.ErrorIs(t, err, model.ErrNotFound)
	}
	_, err := sessions.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestSessionRepository_RejectsExpired(t *testing.T) {
	sessions := newRepo(t)

	err := sessions.Create(context.Background(), model.Session{ID: "old", Email: "x@example.com", ExpiresAt: time.Now().Add(-time.Minute)})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestConnect_PlainAddress(t *testing.T) {
	opt, err := goredis.ParseURL(redisURL)
	require.NoError(t, err)

	client, err := repo.Connect(context.Background(), opt.Addr)
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}
