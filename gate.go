package authkit

// Screen identifies a navigable screen for gate decisions.
type Screen string

const (
	// ScreenDashboard is the telemetry dashboard; protected.
	ScreenDashboard Screen = "dashboard"
	// ScreenProfile is the account profile screen; protected.
	ScreenProfile Screen = "profile"
)

// CanEnter is the session gate: it reports whether the given protected
// screen may be entered under the snapshot's state, true iff the state is
// [StateAuthenticated]. [StateUninitialized] is never admitted — the gate
// must not be consulted before rehydration, and a premature call safely
// redirects to the anonymous entry screen.
//
// CanEnter is a pure predicate: it performs no I/O and no navigation. When
// it returns false the navigation layer is expected to redirect to the
// anonymous entry screen.
func CanEnter(screen Screen, snap Snapshot) bool {
	_ = screen // every protected screen shares the same admission rule
	return snap.State == StateAuthenticated
}
