package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
	if _, err := New(Config{BaseURL: "   "}); err == nil {
		t.Fatal("expected error for blank base URL")
	}
}

func TestCreateTokenSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/jwt/create/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}

		var req TokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Email != "a@b.com" || req.Password != "x" {
			t.Errorf("unexpected credentials %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TokenPair{Access: "acc", Refresh: "ref"})
	}))

	pair, err := client.CreateToken(context.Background(), TokenRequest{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("CreateToken failed: %v", err)
	}
	if pair.Access != "acc" || pair.Refresh != "ref" {
		t.Fatalf("unexpected token pair %+v", pair)
	}
}

func TestCreateTokenDetailMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "No active account found with the given credentials"}`))
	}))

	_, err := client.CreateToken(context.Background(), TokenRequest{Email: "a@b.com", Password: "wrong"})
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", terr.Status)
	}
	if terr.Message != "No active account found with the given credentials" {
		t.Fatalf("unexpected message %q", terr.Message)
	}
}

func TestRegisterFieldErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email": ["user with this email already exists."]}`))
	}))

	_, err := client.Register(context.Background(), RegisterRequest{Email: "a@b.com", Password: "x"})
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Message != "email: user with this email already exists." {
		t.Fatalf("unexpected message %q", terr.Message)
	}
}

func TestErrorBodyUnparseableFallsBackToGenericMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))

	err := client.Activate(context.Background(), ActivationRequest{UID: "1", Token: "t"})
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Message != genericFailureMessage {
		t.Fatalf("unexpected message %q", terr.Message)
	}
}

func TestConnectionFailureYieldsGenericTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens anymore

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = client.CreateToken(context.Background(), TokenRequest{Email: "a@b.com", Password: "x"})
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if terr.Status != 0 {
		t.Fatalf("expected no status on connection failure, got %d", terr.Status)
	}
	if terr.Message != genericFailureMessage {
		t.Fatalf("unexpected message %q", terr.Message)
	}
	if terr.Unwrap() == nil {
		t.Fatal("expected wrapped cause")
	}
}

func TestMeRequiresToken(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	if _, err := client.Me(context.Background(), ""); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	if called {
		t.Fatal("expected no request for empty token")
	}
}

func TestMeSendsBearerToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Account{ID: 7, Email: "a@b.com", FirstName: "A", LastName: "B"})
	}))

	account, err := client.Me(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if account.ID != 7 || account.FirstName != "A" {
		t.Fatalf("unexpected account %+v", account)
	}
}

func TestEmptyBodySuccessOperations(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	ctx := context.Background()
	if err := client.ResetPassword(ctx, "a@b.com"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if err := client.ResetPasswordConfirm(ctx, ResetConfirmRequest{
		UID: "1", Token: "t", NewPassword: "n", ReNewPassword: "n",
	}); err != nil {
		t.Fatalf("ResetPasswordConfirm failed: %v", err)
	}
	if err := client.Activate(ctx, ActivationRequest{UID: "1", Token: "t"}); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
}
