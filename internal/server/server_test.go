package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/moodkeeper/internal/client/api"
	"github.com/iudanet/moodkeeper/internal/config"
	"github.com/iudanet/moodkeeper/internal/models"
	"github.com/iudanet/moodkeeper/internal/server/jwt"
	"github.com/iudanet/moodkeeper/internal/server/middleware"
	"github.com/iudanet/moodkeeper/internal/server/storage/sqlite"
	pkgapi "github.com/iudanet/moodkeeper/pkg/api"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := httptest.NewServer(NewRouter(Deps{
		Logger:    testLogger(),
		Users:     store,
		Documents: store,
		DB:        store,
		Tokens:    jwt.NewService(testSecret, time.Hour),
		Limiter:   limiter,
		Version:   "test",
	}))
	t.Cleanup(srv.Close)

	return srv
}

// loginClient регистрирует пользователя и возвращает клиента с токеном
func loginClient(t *testing.T, baseURL, username string) (*api.Client, string) {
	t.Helper()
	ctx := context.Background()

	client := api.NewClient(baseURL)
	_, err := client.Register(ctx, pkgapi.RegisterRequest{Username: username, Password: "password123"})
	require.NoError(t, err)

	tok, err := client.Login(ctx, pkgapi.LoginRequest{Username: username, Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)
	client.SetToken(tok.AccessToken)

	return client, tok.UserID
}

func TestRouter_DocumentLifecycle(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil)

	client, userID := loginClient(t, srv.URL, "alice")
	require.NoError(t, client.Health(ctx))

	offlineCreated := time.Date(2020, 4, 1, 9, 0, 0, 0, time.UTC)
	first, err := client.Create(ctx, models.CollectionMoodLogs, &models.Record{
		Data:      json.RawMessage(`{"mood":4}`),
		CreatedAt: offlineCreated,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, userID, first.UserID)
	assert.True(t, offlineCreated.Equal(first.CreatedAt))

	second, err := client.Create(ctx, models.CollectionMoodLogs, &models.Record{Data: json.RawMessage(`{"mood":8}`)})
	require.NoError(t, err)

	all, err := client.Query(ctx, models.CollectionMoodLogs, models.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	recent, err := client.Query(ctx, models.CollectionMoodLogs, models.Filter{Since: offlineCreated.Add(time.Hour)})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, second.ID, recent[0].ID)

	require.NoError(t, client.Update(ctx, models.CollectionMoodLogs, first.ID, json.RawMessage(`{"mood":5}`)))
	all, err = client.Query(ctx, models.CollectionMoodLogs, models.Filter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.JSONEq(t, `{"mood":5}`, string(all[0].Data))

	require.NoError(t, client.Delete(ctx, models.CollectionMoodLogs, first.ID))
	err = client.Delete(ctx, models.CollectionMoodLogs, first.ID)
	assert.ErrorIs(t, err, api.ErrNotFound)

	err = client.Update(ctx, models.CollectionMoodLogs, "missing", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestRouter_DocumentsAreScopedToUser(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil)

	alice, _ := loginClient(t, srv.URL, "alice")
	bob, _ := loginClient(t, srv.URL, "bob")

	doc, err := alice.Create(ctx, models.CollectionJournalEntries, &models.Record{Data: json.RawMessage(`{"text":"hi"}`)})
	require.NoError(t, err)

	docs, err := bob.Query(ctx, models.CollectionJournalEntries, models.Filter{})
	require.NoError(t, err)
	assert.Empty(t, docs)

	assert.ErrorIs(t, bob.Delete(ctx, models.CollectionJournalEntries, doc.ID), api.ErrNotFound)
}

func TestRouter_Errors(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil)

	anonymous := api.NewClient(srv.URL)
	_, err := anonymous.Query(ctx, models.CollectionMoodLogs, models.Filter{})
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	client, _ := loginClient(t, srv.URL, "alice")

	_, err = client.Create(ctx, "bad_name", &models.Record{Data: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, api.ErrRejected)

	_, err = anonymous.Register(ctx, pkgapi.RegisterRequest{Username: "alice", Password: "password123"})
	assert.ErrorIs(t, err, api.ErrRejected)

	_, err = anonymous.Login(ctx, pkgapi.LoginRequest{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestRouter_RateLimitIsTransient(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2, testLogger())
	t.Cleanup(limiter.Stop)
	srv := newTestServer(t, limiter)

	client := api.NewClient(srv.URL)
	require.NoError(t, client.Health(context.Background()))
	require.NoError(t, client.Health(context.Background()))

	err := client.Health(context.Background())
	assert.ErrorIs(t, err, api.ErrTransient)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	cfg := &config.ServerConfig{
		Addr:           "127.0.0.1:0",
		DBPath:         ":memory:",
		JWTSecret:      testSecret,
		TokenTTL:       time.Hour,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}

	s, err := New(context.Background(), cfg, "test", testLogger())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
