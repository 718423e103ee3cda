package authkit

import (
	"context"

	"github.com/gridpulse/authkit/transport"
)

// Login exchanges credentials for a token bundle, immediately fetches the
// profile with the new access token, persists both records, and marks the
// operation succeeded. The compound operation is all-or-nothing: when the
// profile fetch fails after token acquisition, the token is discarded, the
// persisted records are cleared, and the Manager rolls back to Anonymous
// with the failure message surfaced.
//
// Missing credentials are rejected locally before any network call.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	if creds.Email == "" {
		m.metricInc(MetricValidationRejected)
		return ErrMissingEmail
	}
	if creds.Password == "" {
		m.metricInc(MetricValidationRejected)
		return ErrMissingPassword
	}

	if err := m.acquire(OpLogin, true); err != nil {
		return err
	}
	defer m.dispatchMu.Unlock()

	pair, err := m.backend.CreateToken(ctx, transport.TokenRequest{
		Email:    creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		m.loginFailed(ctx, creds.Email, err)
		return err
	}

	sess := &Session{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	}

	account, err := m.backend.Me(ctx, sess.AccessToken)
	if err != nil {
		m.loginFailed(ctx, creds.Email, err)
		return err
	}

	profile := &Profile{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}

	m.persistSession(ctx, sess)
	m.persistProfile(ctx, profile)
	m.setAuthenticated(sess, profile)
	m.markSucceeded(OpLogin)

	m.metricInc(MetricLoginSuccess)
	m.emitAudit(ctx, OpLogin, newOpID(), true, nil, func() map[string]string {
		return map[string]string{"email": creds.Email}
	})
	return nil
}

// loginFailed rolls the compound operation back to a well-defined
// anonymous state: no token, no profile, no persisted records.
func (m *Manager) loginFailed(ctx context.Context, email string, err error) {
	m.clearPersisted(ctx)
	m.setAnonymous()
	m.markFailed(OpLogin, err)
	m.metricInc(MetricLoginFailure)
	m.emitAudit(ctx, OpLogin, newOpID(), false, err, func() map[string]string {
		return map[string]string{"email": email}
	})
}

// Logout clears the persisted session and profile records and the
// in-memory state unconditionally. It cannot fail in an observable way and
// leaves the operation status overlay untouched.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.acquire(OpLogout, false); err != nil {
		return err
	}
	defer m.dispatchMu.Unlock()

	m.clearPersisted(ctx)
	m.setAnonymous()

	m.metricInc(MetricLogout)
	m.emitAudit(ctx, OpLogout, newOpID(), true, nil, nil)
	return nil
}
