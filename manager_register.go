package authkit

import (
	"context"

	"github.com/gridpulse/authkit/transport"
)

// Register submits new-account data. Success does not log the user in: the
// session stays nil and the user is expected to activate and then log in.
// On failure the session is forced to nil (and the persisted records
// cleared) so the state machine is never left half-authenticated by a
// rejected registration.
//
// The password confirmation is checked locally; a mismatch or a missing
// required field is rejected before any network call.
func (m *Manager) Register(ctx context.Context, input RegisterInput) error {
	if input.Password != input.ConfirmPassword {
		m.metricInc(MetricValidationRejected)
		return ErrPasswordMismatch
	}
	if input.Email == "" {
		m.metricInc(MetricValidationRejected)
		return ErrMissingEmail
	}
	if input.Password == "" {
		m.metricInc(MetricValidationRejected)
		return ErrMissingPassword
	}

	if err := m.acquire(OpRegister, true); err != nil {
		return err
	}
	defer m.dispatchMu.Unlock()

	_, err := m.backend.Register(ctx, transport.RegisterRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		m.clearPersisted(ctx)
		m.setAnonymous()
		m.markFailed(OpRegister, err)
		m.metricInc(MetricRegisterFailure)
		m.emitAudit(ctx, OpRegister, newOpID(), false, err, func() map[string]string {
			return map[string]string{"email": input.Email}
		})
		return err
	}

	m.markSucceeded(OpRegister)
	m.metricInc(MetricRegisterSuccess)
	m.emitAudit(ctx, OpRegister, newOpID(), true, nil, func() map[string]string {
		return map[string]string{"email": input.Email}
	})
	return nil
}
