package authkit

import (
	"context"
	"errors"
	"sync"

	"github.com/gridpulse/authkit/credstore"
	"github.com/gridpulse/authkit/transport"
)

// Manager is the session state machine: the sole authority on the current
// authentication state and on the outcome of the most recently dispatched
// operation. It mediates between the Backend and the credential store and
// is the only writer to both the in-memory state and the store.
//
// Dispatch methods are serialized: at most one operation runs at a time and
// a dispatched operation always runs to completion, even if its caller has
// navigated away. Snapshot and ResetStatus do not take the dispatch lock
// and stay responsive while an operation is in flight.
type Manager struct {
	config  Config
	backend Backend
	store   credstore.Store
	audit   *auditDispatcher
	metrics *Metrics

	// dispatchMu serializes operations end to end. stateMu guards the
	// observable fields below so Snapshot can read mid-flight.
	dispatchMu sync.Mutex
	stateMu    sync.RWMutex

	state    State
	session  *Session
	profile  *Profile
	status   OperationStatus
	hydrated bool
	closed   bool
}

// Snapshot returns a point-in-time copy of the observable state.
func (m *Manager) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{State: StateUninitialized}
	}

	m.stateMu.RLock()
	defer m.stateMu.RUnlock()

	snap := Snapshot{
		State:  m.state,
		Status: m.status,
	}
	if m.session != nil {
		sess := *m.session
		snap.Session = &sess
	}
	if m.profile != nil {
		profile := *m.profile
		snap.Profile = &profile
	}
	return snap
}

// ResetStatus clears the operation status overlay back to idle without
// touching the session or profile. The UI calls it after consuming a
// terminal success or failure so stale banners do not reappear on
// unrelated re-renders. Calling it repeatedly is equivalent to calling it
// once.
func (m *Manager) ResetStatus() {
	if m == nil {
		return
	}
	m.stateMu.Lock()
	m.status = OperationStatus{}
	m.stateMu.Unlock()
}

// Close tears the Manager down: pending audit events are drained and every
// subsequent dispatch fails with [ErrManagerClosed]. Close does not clear
// the persisted credentials; that is what Logout is for.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.stateMu.Lock()
	m.closed = true
	m.stateMu.Unlock()
	if m.audit != nil {
		m.audit.Close()
	}
}

// AuditDropped returns the number of audit events discarded because the
// buffer was full.
func (m *Manager) AuditDropped() uint64 {
	if m == nil || m.audit == nil {
		return 0
	}
	return m.audit.Dropped()
}

// MetricsSnapshot returns a copy of the operation counters.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	if m == nil || m.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return m.metrics.Snapshot()
}

func (m *Manager) currentState() State {
	if m == nil {
		return StateUninitialized
	}
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.state
}

// acquire takes the dispatch lock and checks the Manager lifecycle. When
// setPending is true the status overlay is reset to pending for op. The
// caller must release dispatchMu when the operation completes.
func (m *Manager) acquire(op Op, setPending bool) error {
	if m == nil || m.backend == nil || m.store == nil {
		return ErrManagerNotReady
	}

	m.dispatchMu.Lock()

	m.stateMu.Lock()
	switch {
	case m.closed:
		m.stateMu.Unlock()
		m.dispatchMu.Unlock()
		return ErrManagerClosed
	case !m.hydrated && op != OpRehydrate:
		m.stateMu.Unlock()
		m.dispatchMu.Unlock()
		return ErrNotHydrated
	}
	if setPending {
		m.status = OperationStatus{Op: op, Pending: true}
	}
	m.stateMu.Unlock()
	return nil
}

// markSucceeded records a terminal success for op.
func (m *Manager) markSucceeded(op Op) {
	m.stateMu.Lock()
	m.status = OperationStatus{Op: op, Succeeded: true}
	m.stateMu.Unlock()
}

// markFailed records a terminal failure for op with a single
// human-readable message.
func (m *Manager) markFailed(op Op, err error) {
	m.stateMu.Lock()
	m.status = OperationStatus{Op: op, Failed: true, Message: failureMessage(err)}
	m.stateMu.Unlock()
}

// setAuthenticated installs a session (and optional profile) and moves the
// state machine to Authenticated.
func (m *Manager) setAuthenticated(sess *Session, profile *Profile) {
	m.stateMu.Lock()
	m.session = sess
	m.profile = profile
	m.state = StateAuthenticated
	m.stateMu.Unlock()
}

// setAnonymous clears the in-memory session and profile and moves the
// state machine to Anonymous. The session is never left partially
// populated: it is either installed whole or nil.
func (m *Manager) setAnonymous() {
	m.stateMu.Lock()
	m.session = nil
	m.profile = nil
	m.state = StateAnonymous
	m.stateMu.Unlock()
}

// failureMessage reduces an operation error to the single message surfaced
// to the UI: the backend-supplied reason when the transport parsed one,
// otherwise the error text itself.
func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	var terr *transport.Error
	if errors.As(err, &terr) {
		return terr.Message
	}
	return err.Error()
}

// persistSession writes the session record. Storage failures degrade
// silently: losing durability is preferable to failing the operation.
func (m *Manager) persistSession(ctx context.Context, sess *Session) {
	blob, err := credstore.Encode(sess)
	if err != nil {
		return
	}
	_ = m.store.Write(ctx, credstore.KeySession, blob)
}

// persistProfile writes the profile record, silently like persistSession.
func (m *Manager) persistProfile(ctx context.Context, profile *Profile) {
	blob, err := credstore.Encode(profile)
	if err != nil {
		return
	}
	_ = m.store.Write(ctx, credstore.KeyProfile, blob)
}

// clearPersisted removes both records. Clear is idempotent and failures
// are ignored for the same reason persistSession ignores them.
func (m *Manager) clearPersisted(ctx context.Context) {
	_ = m.store.Clear(ctx, credstore.KeySession)
	_ = m.store.Clear(ctx, credstore.KeyProfile)
}
