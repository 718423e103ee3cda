package authkit

import (
	"io"

	internalaudit "github.com/gridpulse/authkit/internal/audit"
	internalmetrics "github.com/gridpulse/authkit/internal/metrics"
)

// State is the authentication state of the Manager.
type State uint8

const (
	// StateUninitialized is the state before the startup rehydration has
	// completed. The session gate never admits it.
	StateUninitialized State = iota
	// StateAnonymous means no session is held.
	StateAnonymous
	// StateAuthenticated means a session is held. A cached profile may or
	// may not be present alongside it.
	StateAuthenticated
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// Session is the credential bundle representing an authenticated identity.
// A non-nil Session means the user is considered authenticated; absence
// means anonymous. There is no in-between: every operation that can mutate
// the session leaves it either fully populated or nil.
type Session struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh,omitempty"`
}

// Profile holds the cached display attributes of the authenticated identity,
// fetched from the backend's "who am I" endpoint. It is derived from the
// Session and must be treated as absent whenever the Session is nil.
type Profile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Op identifies a dispatchable Manager operation in statuses and audit
// events.
type Op string

const (
	// OpNone is the Op of the idle status.
	OpNone Op = ""
	// OpRehydrate is the startup read of persisted credentials.
	OpRehydrate Op = "rehydrate"
	// OpRegister is the account registration operation.
	OpRegister Op = "register"
	// OpLogin is the compound token-acquisition + profile-fetch operation.
	OpLogin Op = "login"
	// OpLogout is the logout operation.
	OpLogout Op = "logout"
	// OpActivate is the one-shot account activation operation.
	OpActivate Op = "activate"
	// OpResetPassword is the password reset request operation.
	OpResetPassword Op = "reset_password"
	// OpResetPasswordConfirm is the password reset confirmation operation.
	OpResetPasswordConfirm Op = "reset_password_confirm"
	// OpFetchProfile is the profile refresh operation.
	OpFetchProfile Op = "fetch_profile"
)

// OperationStatus describes the outcome of the most recently dispatched
// operation. Exactly one of Pending, Succeeded, or Failed is set while an
// operation is in flight or unconsumed; the zero value is the idle status.
// It is transient and never persisted.
type OperationStatus struct {
	Op        Op
	Pending   bool
	Succeeded bool
	Failed    bool
	Message   string
}

// Idle reports whether no operation is in flight or awaiting consumption.
func (s OperationStatus) Idle() bool {
	return !s.Pending && !s.Succeeded && !s.Failed
}

// Terminal reports whether the status carries an unconsumed success or
// failure. The UI clears it with [Manager.ResetStatus] once displayed.
func (s OperationStatus) Terminal() bool {
	return s.Succeeded || s.Failed
}

// Snapshot is a point-in-time copy of the Manager's observable state.
// Session and Profile are copies; mutating them does not affect the Manager.
type Snapshot struct {
	State   State
	Session *Session
	Profile *Profile
	Status  OperationStatus
}

// RegisterInput carries the new-account form fields. Password and
// ConfirmPassword must match; Email and Password are required.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Credentials carries the login form fields.
type Credentials struct {
	Email    string
	Password string
}

// ResetConfirmInput carries the password reset confirmation fields from the
// emailed uid/token link. NewPassword and ReNewPassword must match.
type ResetConfirmInput struct {
	UID           string
	Token         string
	NewPassword   string
	ReNewPassword string
}

// AuditEvent is a structured audit record emitted by the Manager, one per
// dispatched operation outcome.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the Manager's audit
// dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a counter in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	// MetricRehydrateHit counts rehydrations that restored a session.
	MetricRehydrateHit = internalmetrics.MetricRehydrateHit
	// MetricRehydrateMiss counts rehydrations that found no usable session.
	MetricRehydrateMiss = internalmetrics.MetricRehydrateMiss
	// MetricRegisterSuccess counts successful registrations.
	MetricRegisterSuccess = internalmetrics.MetricRegisterSuccess
	// MetricRegisterFailure counts failed registrations.
	MetricRegisterFailure = internalmetrics.MetricRegisterFailure
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess = internalmetrics.MetricLoginSuccess
	// MetricLoginFailure counts failed logins, including profile-fetch
	// failures that rolled the session back.
	MetricLoginFailure = internalmetrics.MetricLoginFailure
	// MetricLogout counts logouts.
	MetricLogout = internalmetrics.MetricLogout
	// MetricActivateSuccess counts successful account activations.
	MetricActivateSuccess = internalmetrics.MetricActivateSuccess
	// MetricActivateFailure counts failed account activations.
	MetricActivateFailure = internalmetrics.MetricActivateFailure
	// MetricResetRequest counts password reset requests.
	MetricResetRequest = internalmetrics.MetricResetRequest
	// MetricResetConfirmSuccess counts successful reset confirmations.
	MetricResetConfirmSuccess = internalmetrics.MetricResetConfirmSuccess
	// MetricResetConfirmFailure counts failed reset confirmations.
	MetricResetConfirmFailure = internalmetrics.MetricResetConfirmFailure
	// MetricProfileRefresh counts successful profile refreshes.
	MetricProfileRefresh = internalmetrics.MetricProfileRefresh
	// MetricProfileRefreshFailure counts failed profile refreshes.
	MetricProfileRefreshFailure = internalmetrics.MetricProfileRefreshFailure
	// MetricValidationRejected counts dispatches rejected by local
	// validation before any network call.
	MetricValidationRejected = internalmetrics.MetricValidationRejected
)

// Metrics holds atomic counters for Manager operations.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{Enabled: cfg.Enabled})
}
