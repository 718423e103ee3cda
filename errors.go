package authkit

import "errors"

var (
	// ErrUnauthenticated is returned by operations that require a session
	// when none is present. It is a local check; no request is issued.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrMissingEmail is returned when a dispatched operation requires an
	// email address and none was supplied.
	ErrMissingEmail = errors.New("email required")
	// ErrMissingPassword is returned when a dispatched operation requires a
	// password and none was supplied.
	ErrMissingPassword = errors.New("password required")
	// ErrPasswordMismatch is returned when a password and its confirmation
	// field do not match.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrMissingActivation is returned when an activation or reset
	// confirmation is dispatched without its uid/token pair.
	ErrMissingActivation = errors.New("activation uid and token required")
	// ErrNotHydrated is returned when an operation other than Rehydrate is
	// dispatched before the startup rehydration has completed.
	ErrNotHydrated = errors.New("manager not hydrated")
	// ErrManagerClosed is returned when an operation is dispatched after
	// Close.
	ErrManagerClosed = errors.New("manager closed")
	// ErrManagerNotReady is returned when a Manager is used without having
	// been constructed through the Builder.
	ErrManagerNotReady = errors.New("manager not initialized")
)

// IsValidation reports whether err is one of the locally detected request
// validation failures. Validation failures are rejected before any network
// call and never move the operation status to pending.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrMissingEmail),
		errors.Is(err, ErrMissingPassword),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrMissingActivation),
		errors.Is(err, ErrUnauthenticated):
		return true
	}
	return false
}
