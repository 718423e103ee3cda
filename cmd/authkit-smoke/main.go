// Command authkit-smoke drives a full session lifecycle — rehydrate,
// register, activate, login, profile fetch, logout — and prints the audit
// trail and counters. With no flags it runs fully self-contained against an
// embedded backend double and an embedded miniredis.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http/httptest"
	"os"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gridpulse/authkit"
	"github.com/gridpulse/authkit/credstore"
	"github.com/gridpulse/authkit/internal/authtest"
)

func main() {
	var (
		baseURL   = flag.String("base-url", "", "backend origin; if empty, an embedded backend double is used")
		redisAddr = flag.String("redis-addr", "", "redis address for the credential store; if empty, miniredis is used")
		email     = flag.String("email", "smoke@example.com", "account email")
		password  = flag.String("password", "smoke-password-123", "account password")
		timeout   = flag.Duration("timeout", 30*time.Second, "overall run timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var backend *authtest.Server
	target := *baseURL
	if target == "" {
		backend = authtest.New()
		srv := httptest.NewServer(backend)
		defer srv.Close()
		target = srv.URL
	}

	addr := *redisAddr
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fatalf("start miniredis: %v", err)
		}
		defer mr.Close()
		addr = mr.Addr()
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	manager, err := authkit.New().
		WithBaseURL(target).
		WithStore(credstore.NewRedisStore(rdb, "akc", 0)).
		WithAuditSink(authkit.NewJSONWriterSink(os.Stdout)).
		Build()
	if err != nil {
		fatalf("build manager: %v", err)
	}
	defer manager.Close()

	if err := manager.Rehydrate(ctx); err != nil {
		fatalf("rehydrate: %v", err)
	}

	if backend != nil {
		if err := manager.Register(ctx, authkit.RegisterInput{
			FirstName:       "Smoke",
			LastName:        "Test",
			Email:           *email,
			Password:        *password,
			ConfirmPassword: *password,
		}); err != nil {
			fatalf("register: %v", err)
		}
		uid, token, ok := backend.ActivationFor(*email)
		if !ok {
			fatalf("no activation issued for %s", *email)
		}
		if err := manager.Activate(ctx, uid, token); err != nil {
			fatalf("activate: %v", err)
		}
	}

	if err := manager.Login(ctx, authkit.Credentials{Email: *email, Password: *password}); err != nil {
		fatalf("login: %v", err)
	}
	if err := manager.FetchProfile(ctx); err != nil {
		fatalf("fetch profile: %v", err)
	}

	snap := manager.Snapshot()
	fmt.Printf("state=%s gate(dashboard)=%v", snap.State, authkit.CanEnter(authkit.ScreenDashboard, snap))
	if snap.Profile != nil {
		fmt.Printf(" profile=%s %s <%s>", snap.Profile.FirstName, snap.Profile.LastName, snap.Profile.Email)
	}
	if snap.Session != nil {
		if claims, err := snap.Session.Claims(); err == nil {
			fmt.Printf(" token_expires=%s", claims.ExpiresAt.Format(time.RFC3339))
		}
	}
	fmt.Println()

	if err := manager.Logout(ctx); err != nil {
		fatalf("logout: %v", err)
	}

	fmt.Printf("final state=%s dropped_audit=%d counters=%d\n",
		manager.Snapshot().State,
		manager.AuditDropped(),
		len(manager.MetricsSnapshot().Counters),
	)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
