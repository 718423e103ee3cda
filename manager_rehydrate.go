package authkit

import (
	"context"

	"github.com/gridpulse/authkit/credstore"
)

// Rehydrate reads the persisted session and profile exactly once at process
// start and resolves the state machine out of [StateUninitialized]. It
// never fails outwardly: a missing, corrupt, or unreadable record is
// treated as "no session" and the Manager comes up anonymous. The session
// gate must not be evaluated before Rehydrate returns.
//
// Subsequent calls are no-ops. Rehydrate does not touch the operation
// status overlay.
func (m *Manager) Rehydrate(ctx context.Context) error {
	if err := m.acquire(OpRehydrate, false); err != nil {
		return err
	}
	defer m.dispatchMu.Unlock()

	m.stateMu.RLock()
	hydrated := m.hydrated
	m.stateMu.RUnlock()
	if hydrated {
		return nil
	}

	sess := m.readPersistedSession(ctx)
	var profile *Profile
	if sess != nil {
		// A profile with no session is stale by definition and ignored.
		profile = m.readPersistedProfile(ctx)
	}

	m.stateMu.Lock()
	m.hydrated = true
	if sess != nil {
		m.session = sess
		m.profile = profile
		m.state = StateAuthenticated
	} else {
		m.session = nil
		m.profile = nil
		m.state = StateAnonymous
	}
	m.stateMu.Unlock()

	if sess != nil {
		m.metricInc(MetricRehydrateHit)
	} else {
		m.metricInc(MetricRehydrateMiss)
	}
	m.emitAudit(ctx, OpRehydrate, newOpID(), true, nil, func() map[string]string {
		return map[string]string{
			"restored": boolString(sess != nil),
		}
	})

	return nil
}

func (m *Manager) readPersistedSession(ctx context.Context) *Session {
	blob, err := m.store.Read(ctx, credstore.KeySession)
	if err != nil {
		return nil
	}
	var sess Session
	if err := credstore.Decode(blob, &sess); err != nil {
		return nil
	}
	if sess.AccessToken == "" {
		return nil
	}
	return &sess
}

func (m *Manager) readPersistedProfile(ctx context.Context) *Profile {
	blob, err := m.store.Read(ctx, credstore.KeyProfile)
	if err != nil {
		return nil
	}
	var profile Profile
	if err := credstore.Decode(blob, &profile); err != nil {
		return nil
	}
	return &profile
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
