package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoToken is returned by Me when no bearer token is supplied. It is a
// local check; no request is issued.
var ErrNoToken = errors.New("no access token supplied")

// Djoser-style endpoint paths, relative to the configured base URL.
const (
	pathRegister       = "/api/v1/auth/users/"
	pathCreateToken    = "/api/v1/auth/jwt/create/"
	pathActivate       = "/api/v1/auth/users/activation/"
	pathResetPassword  = "/api/v1/auth/users/reset_password/"
	pathResetConfirm   = "/api/v1/auth/users/reset_password_confirm/"
	pathMe             = "/api/v1/auth/users/me/"
	defaultTimeout     = 15 * time.Second
	defaultUserAgent   = "authkit"
	maxErrorBodyBytes  = 64 << 10
	contentTypeJSON    = "application/json"
	authorizationBear  = "Bearer "
	headerContentType  = "Content-Type"
	headerAccept       = "Accept"
	headerAuthoriz     = "Authorization"
	headerUserAgent    = "User-Agent"
)

// Config configures a [Client].
type Config struct {
	// BaseURL is the backend origin, e.g. "https://api.example.com".
	// Required. A trailing slash is trimmed.
	BaseURL string
	// HTTPClient is the underlying client. When nil, a client with a
	// 15-second timeout is used. The transport never overrides timeouts
	// beyond this default and never retries.
	HTTPClient *http.Client
	// UserAgent overrides the User-Agent header. Optional.
	UserAgent string
}

// Client is a stateless mapping of one backend endpoint per operation.
// It holds no session state, performs no retries, and caches nothing.
// A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// New creates a [Client] from cfg.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("transport: base URL required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		userAgent:  userAgent,
	}, nil
}

// RegisterRequest is the new-account payload.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegisterResponse is the created-account echo returned by the backend.
type RegisterResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// TokenRequest is the credential payload for token creation.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is the credential bundle returned on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// ActivationRequest is the uid/token pair from the activation email.
type ActivationRequest struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
}

// ResetConfirmRequest is the payload confirming a password reset.
type ResetConfirmRequest struct {
	UID           string `json:"uid"`
	Token         string `json:"token"`
	NewPassword   string `json:"new_password"`
	ReNewPassword string `json:"re_new_password"`
}

// Account is the identity payload returned by the "who am I" endpoint.
type Account struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register submits a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	var resp RegisterResponse
	err := c.do(ctx, http.MethodPost, pathRegister, req, "", &resp)
	return resp, err
}

// CreateToken exchanges credentials for a token pair.
func (c *Client) CreateToken(ctx context.Context, req TokenRequest) (TokenPair, error) {
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, pathCreateToken, req, "", &pair)
	return pair, err
}

// Activate confirms a new account with its emailed uid/token pair.
func (c *Client) Activate(ctx context.Context, req ActivationRequest) error {
	return c.do(ctx, http.MethodPost, pathActivate, req, "", nil)
}

// ResetPassword asks the backend to send a password reset email.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.do(ctx, http.MethodPost, pathResetPassword, payload, "", nil)
}

// ResetPasswordConfirm completes a password reset.
func (c *Client) ResetPasswordConfirm(ctx context.Context, req ResetConfirmRequest) error {
	return c.do(ctx, http.MethodPost, pathResetConfirm, req, "", nil)
}

// Me fetches the authenticated identity. The caller must supply the bearer
// token; an empty token fails locally with [ErrNoToken].
func (c *Client) Me(ctx context.Context, accessToken string) (Account, error) {
	var account Account
	if accessToken == "" {
		return account, ErrNoToken
	}
	err := c.do(ctx, http.MethodGet, pathMe, nil, accessToken, &account)
	return account, err
}

func (c *Client) do(ctx context.Context, method, path string, payload any, bearer string, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("transport: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("transport: build request: %w", err)
	}
	req.Header.Set(headerAccept, contentTypeJSON)
	req.Header.Set(headerUserAgent, c.userAgent)
	if payload != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if bearer != "" {
		req.Header.Set(headerAuthoriz, authorizationBear+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: genericFailureMessage, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: genericFailureMessage, cause: err}
	}
	return nil
}
