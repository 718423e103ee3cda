package authkit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// newOpID tags one dispatched operation across its audit events.
func newOpID() string {
	return uuid.NewString()
}

// emitAudit records one terminal outcome for a dispatched operation. The
// metadata callback is only invoked when auditing is active, keeping the
// disabled path allocation-free.
func (m *Manager) emitAudit(
	ctx context.Context,
	op Op,
	opID string,
	success bool,
	opErr error,
	metadata func() map[string]string,
) {
	if m == nil || m.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		Op:        string(op),
		OpID:      opID,
		State:     m.currentState().String(),
		Success:   success,
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	m.audit.Emit(ctx, event)
}

func (m *Manager) metricInc(id MetricID) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.Inc(id)
}
