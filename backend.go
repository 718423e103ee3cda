package authkit

import (
	"context"

	"github.com/gridpulse/authkit/transport"
)

// Backend is the set of authentication endpoints the Manager dispatches
// against. [transport.Client] is the production implementation; tests
// substitute doubles.
type Backend interface {
	Register(ctx context.Context, req transport.RegisterRequest) (transport.RegisterResponse, error)
	CreateToken(ctx context.Context, req transport.TokenRequest) (transport.TokenPair, error)
	Activate(ctx context.Context, req transport.ActivationRequest) error
	ResetPassword(ctx context.Context, email string) error
	ResetPasswordConfirm(ctx context.Context, req transport.ResetConfirmRequest) error
	Me(ctx context.Context, accessToken string) (transport.Account, error)
}

var _ Backend = (*transport.Client)(nil)
