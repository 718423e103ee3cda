// Package authkit implements the client-side authentication session lifecycle
// for the power-monitoring backend: credential-bearing requests, per-operation
// status tracking, durable session persistence across restarts, and the
// admission predicate that gates protected screens.
//
// The package is built around [Manager], the single source of truth for
// "is the user logged in" and "what happened during the last auth operation".
// A Manager is constructed through [Builder.Build], rehydrated once from its
// credential store, and then driven by the UI via dispatch methods
// ([Manager.Login], [Manager.Register], [Manager.Logout], ...). Dispatches
// are serialized per Manager, so an interleaved logout cannot race a pending
// login into a partially populated session.
//
// # Architecture boundaries
//
// authkit is the public surface. It exposes [Manager], [Builder], [Config],
// and value types (Session, Profile, OperationStatus, Snapshot). Endpoint
// calls live in the transport package, persistence in credstore, and audit
// dispatch under internal/. The telemetry package is an independent
// collaborator that shares nothing with the Manager except the Profile its
// consumers display.
//
// # What this package must NOT do
//
//   - Render screens or perform navigation; [CanEnter] is a pure predicate.
//   - Refresh or rotate tokens; expired credentials surface as transport
//     failures and the caller re-authenticates.
//   - Surface storage errors; a missing or corrupt persisted record always
//     degrades to the anonymous state.
package authkit
