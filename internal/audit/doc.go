// Package audit implements async event delivery for session lifecycle
// operations.
//
// # Components
//
//   - [Sink] — interface for event consumers (channel, JSON writer, no-op).
//   - [Event] — structured record with timestamp, operation, outcome, and
//     free-form metadata.
//
// Buffering and drop-if-full semantics live in the root package's
// dispatcher; this package only defines the record and its consumers.
//
// # What this package must NOT do
//
//   - Decide which events to emit — that belongs to the Manager.
//   - Import authkit or any sibling internal package.
//   - Perform network I/O beyond what a caller-supplied Sink does.
package audit
