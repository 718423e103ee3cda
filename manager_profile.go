package authkit

import "context"

// FetchProfile re-fetches the profile with the current session's access
// token and overwrites both the in-memory copy and the persisted record.
// Without a session it fails locally with [ErrUnauthenticated]: nothing is
// dispatched, no status moves, state is unchanged.
//
// A transport failure marks the status failed but keeps the session: a
// flaky profile endpoint must not log the user out.
func (m *Manager) FetchProfile(ctx context.Context) error {
	if err := m.acquire(OpFetchProfile, false); err != nil {
		return err
	}
	defer m.dispatchMu.Unlock()

	m.stateMu.RLock()
	var accessToken string
	if m.session != nil {
		accessToken = m.session.AccessToken
	}
	m.stateMu.RUnlock()

	if accessToken == "" {
		m.metricInc(MetricValidationRejected)
		return ErrUnauthenticated
	}

	m.stateMu.Lock()
	m.status = OperationStatus{Op: OpFetchProfile, Pending: true}
	m.stateMu.Unlock()

	account, err := m.backend.Me(ctx, accessToken)
	if err != nil {
		m.markFailed(OpFetchProfile, err)
		m.metricInc(MetricProfileRefreshFailure)
		m.emitAudit(ctx, OpFetchProfile, newOpID(), false, err, nil)
		return err
	}

	profile := &Profile{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}

	m.persistProfile(ctx, profile)

	m.stateMu.Lock()
	m.profile = profile
	m.stateMu.Unlock()
	m.markSucceeded(OpFetchProfile)

	m.metricInc(MetricProfileRefresh)
	m.emitAudit(ctx, OpFetchProfile, newOpID(), true, nil, nil)
	return nil
}
