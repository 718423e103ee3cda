package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

const genericFailureMessage = "network request failed"

// Error is a transport-level failure: the backend rejected the request or
// the request never completed. Message carries the backend-supplied reason
// when one could be parsed, otherwise a generic network-failure message.
type Error struct {
	// Status is the HTTP status code, or zero when no response was
	// received.
	Status int
	// Message is a single human-readable failure reason.
	Message string

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("transport: %s (status %d)", e.Message, e.Status)
	}
	return "transport: " + e.Message
}

// Unwrap exposes the underlying cause, when any.
func (e *Error) Unwrap() error {
	return e.cause
}

// decodeError maps a non-2xx response to an *Error, pulling the most
// specific message the backend supplied. Djoser-style backends answer with
// either {"detail": "..."}, {"message": "..."}, or a field-error object
// such as {"email": ["user with this email already exists."]}.
func decodeError(resp *http.Response) error {
	transportErr := &Error{
		Status:  resp.StatusCode,
		Message: genericFailureMessage,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(body) == 0 {
		return transportErr
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return transportErr
	}

	for _, key := range []string{"message", "detail"} {
		if raw, ok := payload[key]; ok {
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
				transportErr.Message = msg
				return transportErr
			}
		}
	}

	// Field errors: pick the first field alphabetically for a stable
	// message.
	fields := make([]string, 0, len(payload))
	for field := range payload {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		var msgs []string
		if err := json.Unmarshal(payload[field], &msgs); err == nil && len(msgs) > 0 {
			transportErr.Message = field + ": " + strings.TrimSpace(msgs[0])
			return transportErr
		}
	}

	return transportErr
}
