// Package authtest provides an in-process double of the backend's
// authentication API for integration tests and the smoke binary.
//
// The double is wire-compatible with the endpoints the transport package
// calls: Djoser-style paths, field-error bodies on rejection, and HS256
// access tokens carrying user_id/exp/iat/jti claims.
package authtest
