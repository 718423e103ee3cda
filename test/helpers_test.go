//go:build integration
// +build integration

package test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gridpulse/authkit"
	"github.com/gridpulse/authkit/credstore"
	"github.com/gridpulse/authkit/internal/authtest"
)

// harness wires a Manager to an in-process backend double and a
// miniredis-backed credential store, the full stack short of the network.
type harness struct {
	backend *authtest.Server
	baseURL string
	store   *credstore.RedisStore
	manager *authkit.Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	backend := authtest.New()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := credstore.NewRedisStore(rdb, "akc", time.Hour)

	manager, err := authkit.New().
		WithBaseURL(srv.URL).
		WithStore(store).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(manager.Close)

	return &harness{
		backend: backend,
		baseURL: srv.URL,
		store:   store,
		manager: manager,
	}
}

// restart builds a fresh Manager over the same backend and store, standing
// in for an app relaunch.
func (h *harness) restart(t *testing.T) *authkit.Manager {
	t.Helper()

	manager, err := authkit.New().
		WithBaseURL(h.baseURL).
		WithStore(h.store).
		Build()
	if err != nil {
		t.Fatalf("Build on restart failed: %v", err)
	}
	t.Cleanup(manager.Close)

	if err := manager.Rehydrate(context.Background()); err != nil {
		t.Fatalf("Rehydrate on restart failed: %v", err)
	}
	return manager
}

func rehydrate(t *testing.T, m *authkit.Manager) {
	t.Helper()

	if err := m.Rehydrate(context.Background()); err != nil {
		t.Fatalf("Rehydrate failed: %v", err)
	}
}
