// Package credstore provides durable key/value persistence for exactly two
// logical records: the serialized session and the cached profile.
//
// Records are JSON envelopes carrying an explicit schema version so the
// format can migrate without breaking rehydration. Reads of missing or
// corrupt records surface [ErrNotFound] or [ErrCorrupt]; the Manager treats
// both as absence, because losing a session is preferable to failing app
// startup.
//
// Implementations: [RedisStore] (go-redis), [FileStore] (device-local JSON
// files with atomic replace), and [MemoryStore] (tests).
//
// # What this package must NOT do
//
//   - Interpret record contents; it moves opaque blobs.
//   - Encrypt beyond what the backing store itself provides.
//   - Import authkit (the Manager depends on this package, never the
//     reverse).
package credstore
