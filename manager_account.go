package authkit

import (
	"context"

	"github.com/gridpulse/authkit/transport"
)

// Activate confirms a new account with the uid/token pair from the
// activation email. Activation does not imply login: the session is left
// untouched regardless of outcome, only the operation status moves.
func (m *Manager) Activate(ctx context.Context, uid, token string) error {
	if uid == "" || token == "" {
		m.metricInc(MetricValidationRejected)
		return ErrMissingActivation
	}

	if err := m.acquire(OpActivate, true); err != nil {
		return err
	}
	defer m.dispatchMu.Unlock()

	err := m.backend.Activate(ctx, transport.ActivationRequest{
		UID:   uid,
		Token: token,
	})
	if err != nil {
		m.markFailed(OpActivate, err)
		m.metricInc(MetricActivateFailure)
		m.emitAudit(ctx, OpActivate, newOpID(), false, err, nil)
		return err
	}

	m.markSucceeded(OpActivate)
	m.metricInc(MetricActivateSuccess)
	m.emitAudit(ctx, OpActivate, newOpID(), true, nil, nil)
	return nil
}

// RequestPasswordReset asks the backend to email a reset link. A single
// round trip; the session is not touched.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		m.metricInc(MetricValidationRejected)
		return ErrMissingEmail
	}

	if err := m.acquire(OpResetPassword, true); err != nil {
		return err
	}
	defer m.dispatchMu.Unlock()

	if err := m.backend.ResetPassword(ctx, email); err != nil {
		m.markFailed(OpResetPassword, err)
		m.emitAudit(ctx, OpResetPassword, newOpID(), false, err, func() map[string]string {
			return map[string]string{"email": email}
		})
		return err
	}

	m.markSucceeded(OpResetPassword)
	m.metricInc(MetricResetRequest)
	m.emitAudit(ctx, OpResetPassword, newOpID(), true, nil, func() map[string]string {
		return map[string]string{"email": email}
	})
	return nil
}

// ConfirmPasswordReset completes a password reset with the emailed
// uid/token pair and the new password. A mismatched confirmation is
// rejected locally before any network call; the session is not touched.
func (m *Manager) ConfirmPasswordReset(ctx context.Context, input ResetConfirmInput) error {
	if input.UID == "" || input.Token == "" {
		m.metricInc(MetricValidationRejected)
		return ErrMissingActivation
	}
	if input.NewPassword == "" || input.ReNewPassword == "" {
		m.metricInc(MetricValidationRejected)
		return ErrMissingPassword
	}
	if input.NewPassword != input.ReNewPassword {
		m.metricInc(MetricValidationRejected)
		return ErrPasswordMismatch
	}

	if err := m.acquire(OpResetPasswordConfirm, true); err != nil {
		return err
	}
	defer m.dispatchMu.Unlock()

	err := m.backend.ResetPasswordConfirm(ctx, transport.ResetConfirmRequest{
		UID:           input.UID,
		Token:         input.Token,
		NewPassword:   input.NewPassword,
		ReNewPassword: input.ReNewPassword,
	})
	if err != nil {
		m.markFailed(OpResetPasswordConfirm, err)
		m.metricInc(MetricResetConfirmFailure)
		m.emitAudit(ctx, OpResetPasswordConfirm, newOpID(), false, err, nil)
		return err
	}

	m.markSucceeded(OpResetPasswordConfirm)
	m.metricInc(MetricResetConfirmSuccess)
	m.emitAudit(ctx, OpResetPasswordConfirm, newOpID(), true, nil, nil)
	return nil
}
