package metrics

import "sync/atomic"

// MetricID identifies a counter slot.
type MetricID uint16

const (
	// MetricRehydrateHit counts rehydrations that restored a session.
	MetricRehydrateHit MetricID = iota
	// MetricRehydrateMiss counts rehydrations that found nothing usable.
	MetricRehydrateMiss
	// MetricRegisterSuccess counts successful registrations.
	MetricRegisterSuccess
	// MetricRegisterFailure counts failed registrations.
	MetricRegisterFailure
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess
	// MetricLoginFailure counts failed logins.
	MetricLoginFailure
	// MetricLogout counts logouts.
	MetricLogout
	// MetricActivateSuccess counts successful activations.
	MetricActivateSuccess
	// MetricActivateFailure counts failed activations.
	MetricActivateFailure
	// MetricResetRequest counts password reset requests.
	MetricResetRequest
	// MetricResetConfirmSuccess counts successful reset confirmations.
	MetricResetConfirmSuccess
	// MetricResetConfirmFailure counts failed reset confirmations.
	MetricResetConfirmFailure
	// MetricProfileRefresh counts successful profile refreshes.
	MetricProfileRefresh
	// MetricProfileRefreshFailure counts failed profile refreshes.
	MetricProfileRefreshFailure
	// MetricValidationRejected counts locally rejected dispatches.
	MetricValidationRejected

	// MetricIDCount is the number of defined counter slots.
	MetricIDCount
)

// Config controls metric collection.
type Config struct {
	Enabled bool
}

type paddedCounter struct {
	value uint64
	_     [56]byte
}

// Metrics holds one cache-line-padded atomic counter per MetricID.
// The zero value is unusable; construct through New.
type Metrics struct {
	enabled  bool
	counters [MetricIDCount]paddedCounter
}

// New creates a Metrics instance. When cfg.Enabled is false, Inc and
// Snapshot are no-ops.
func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc atomically increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value returns the current value of the counter for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot returns a deep copy of every non-zero counter.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{Counters: map[MetricID]uint64{}}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < MetricIDCount; id++ {
		if v := atomic.LoadUint64(&m.counters[id].value); v > 0 {
			snap.Counters[id] = v
		}
	}
	return snap
}
