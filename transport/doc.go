// Package transport maps the backend's authentication endpoints to typed
// request/response pairs.
//
// A [Client] call either returns a parsed success payload or fails with an
// [*Error] carrying the backend-supplied message when one was parseable.
// The package is deliberately dumb: no retries, no caching, no timeout
// overrides beyond the default http.Client timeout, and no session state —
// bearer tokens are supplied per call by the owner of the session.
//
// # What this package must NOT do
//
//   - Hold or persist credentials.
//   - Interpret authentication state; that belongs to the Manager.
//   - Retry failed requests.
package transport
