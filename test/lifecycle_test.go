//go:build integration
// +build integration

package test

import (
	"context"
	"errors"
	"testing"

	"github.com/gridpulse/authkit"
	"github.com/gridpulse/authkit/transport"
)

func TestFullAccountLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rehydrate(t, h.manager)

	if snap := h.manager.Snapshot(); snap.State != authkit.StateAnonymous {
		t.Fatalf("expected anonymous on first start, got %v", snap.State)
	}

	err := h.manager.Register(ctx, authkit.RegisterInput{
		FirstName:       "Jo",
		LastName:        "Watt",
		Email:           "jo@example.com",
		Password:        "hunter2!",
		ConfirmPassword: "hunter2!",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// The account is inactive until the activation link is followed.
	err = h.manager.Login(ctx, authkit.Credentials{Email: "jo@example.com", Password: "hunter2!"})
	var terr *transport.Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected login before activation to fail, got %v", err)
	}

	uid, token, ok := h.backend.ActivationFor("jo@example.com")
	if !ok {
		t.Fatal("expected a pending activation")
	}
	if err := h.manager.Activate(ctx, uid, token); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	err = h.manager.Login(ctx, authkit.Credentials{Email: "jo@example.com", Password: "hunter2!"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	snap := h.manager.Snapshot()
	if snap.State != authkit.StateAuthenticated || snap.Session == nil {
		t.Fatalf("expected authenticated, got %+v", snap)
	}
	if snap.Profile == nil || snap.Profile.Email != "jo@example.com" || snap.Profile.FirstName != "Jo" {
		t.Fatalf("unexpected profile %+v", snap.Profile)
	}
	if !authkit.CanEnter(authkit.ScreenDashboard, snap) {
		t.Fatal("expected gate to admit the logged-in user")
	}

	claims, err := snap.Session.Claims()
	if err != nil {
		t.Fatalf("Claims failed: %v", err)
	}
	if claims.UserID != snap.Profile.ID {
		t.Fatalf("token user_id %d does not match profile ID %d", claims.UserID, snap.Profile.ID)
	}
	if claims.TokenType != "access" {
		t.Fatalf("unexpected token type %q", claims.TokenType)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rehydrate(t, h.manager)

	h.backend.Seed("jo@example.com", "hunter2!", "Jo", "Watt")
	if err := h.manager.Login(ctx, authkit.Credentials{Email: "jo@example.com", Password: "hunter2!"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	before := h.manager.Snapshot()
	h.manager.Close()

	m := h.restart(t)

	after := m.Snapshot()
	if after.State != authkit.StateAuthenticated {
		t.Fatalf("expected session restored after restart, got %v", after.State)
	}
	if after.Session.AccessToken != before.Session.AccessToken {
		t.Fatal("access token changed across restart")
	}
	if after.Profile == nil || after.Profile.Email != before.Profile.Email {
		t.Fatalf("profile not restored: %+v", after.Profile)
	}

	// The restored token still authenticates against the backend.
	if err := m.FetchProfile(ctx); err != nil {
		t.Fatalf("FetchProfile with restored token failed: %v", err)
	}
}

func TestLogoutDoesNotSurviveRestart(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rehydrate(t, h.manager)

	h.backend.Seed("jo@example.com", "hunter2!", "Jo", "Watt")
	if err := h.manager.Login(ctx, authkit.Credentials{Email: "jo@example.com", Password: "hunter2!"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := h.manager.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	h.manager.Close()

	m := h.restart(t)

	snap := m.Snapshot()
	if snap.State != authkit.StateAnonymous || snap.Session != nil {
		t.Fatalf("expected anonymous after logout and restart, got %+v", snap)
	}
	if authkit.CanEnter(authkit.ScreenDashboard, snap) {
		t.Fatal("gate must not admit after logout")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rehydrate(t, h.manager)

	h.backend.Seed("jo@example.com", "old-password", "Jo", "Watt")

	if err := h.manager.RequestPasswordReset(ctx, "jo@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}

	uid, token, ok := h.backend.ResetFor("jo@example.com")
	if !ok {
		t.Fatal("expected a pending reset")
	}
	err := h.manager.ConfirmPasswordReset(ctx, authkit.ResetConfirmInput{
		UID:           uid,
		Token:         token,
		NewPassword:   "new-password",
		ReNewPassword: "new-password",
	})
	if err != nil {
		t.Fatalf("ConfirmPasswordReset failed: %v", err)
	}

	// The old password no longer works, the new one does.
	err = h.manager.Login(ctx, authkit.Credentials{Email: "jo@example.com", Password: "old-password"})
	if err == nil {
		t.Fatal("expected login with the old password to fail")
	}
	if err := h.manager.Login(ctx, authkit.Credentials{Email: "jo@example.com", Password: "new-password"}); err != nil {
		t.Fatalf("login with the new password failed: %v", err)
	}
}

func TestBadCredentialsSurfaceBackendMessage(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rehydrate(t, h.manager)

	h.backend.Seed("jo@example.com", "hunter2!", "Jo", "Watt")

	err := h.manager.Login(ctx, authkit.Credentials{Email: "jo@example.com", Password: "wrong"})
	var terr *transport.Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected transport error, got %v", err)
	}

	snap := h.manager.Snapshot()
	if !snap.Status.Failed || snap.Status.Message == "" {
		t.Fatalf("expected a surfaced failure message, got %+v", snap.Status)
	}
	if snap.State != authkit.StateAnonymous {
		t.Fatalf("expected anonymous after failed login, got %v", snap.State)
	}
}

func TestDuplicateRegistrationSurfacesFieldError(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	rehydrate(t, h.manager)

	h.backend.Seed("jo@example.com", "hunter2!", "Jo", "Watt")

	err := h.manager.Register(ctx, authkit.RegisterInput{
		Email:           "jo@example.com",
		Password:        "hunter2!",
		ConfirmPassword: "hunter2!",
	})
	if err == nil {
		t.Fatal("expected duplicate registration to fail")
	}

	snap := h.manager.Snapshot()
	if snap.Status.Message != "email: user with this email already exists." {
		t.Fatalf("unexpected failure message %q", snap.Status.Message)
	}
}
