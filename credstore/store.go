package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Stable keys for the two logical records the store holds.
const (
	// KeySession holds the serialized credential bundle.
	KeySession = "session"
	// KeyProfile holds the serialized cached profile.
	KeyProfile = "profile"
)

// SchemaVersion tags every persisted record so the serialization format can
// evolve without breaking rehydration of older blobs.
const SchemaVersion = 1

var (
	// ErrNotFound is returned by Read when the record is absent. Callers
	// treat corruption identically to absence, so a corrupt blob also
	// surfaces as ErrNotFound after decoding fails.
	ErrNotFound = errors.New("credstore: record not found")
	// ErrUnavailable wraps backend failures (I/O, network).
	ErrUnavailable = errors.New("credstore: backend unavailable")
	// ErrCorrupt is returned by Decode when a blob cannot be parsed or its
	// schema version is unknown.
	ErrCorrupt = errors.New("credstore: record corrupt")
)

// Store is durable key/value persistence for the session and cached
// profile. Write and Read are all-or-nothing per key; Clear removes a key
// idempotently (absence is not an error). Implementations must be safe for
// concurrent use.
type Store interface {
	Write(ctx context.Context, key string, value []byte) error
	Read(ctx context.Context, key string) ([]byte, error)
	Clear(ctx context.Context, key string) error
}

type envelope struct {
	Schema int             `json:"schema"`
	Data   json.RawMessage `json:"data"`
}

// Encode wraps payload in a schema-versioned JSON envelope suitable for
// Store.Write.
func Encode(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("credstore: encode payload: %w", err)
	}
	return json.Marshal(envelope{Schema: SchemaVersion, Data: data})
}

// Decode unwraps a blob produced by Encode into out. Unparseable blobs and
// unknown schema versions fail with [ErrCorrupt]; callers are expected to
// treat that the same as absence.
func Decode(blob []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if env.Schema != SchemaVersion {
		return fmt.Errorf("%w: unknown schema version %d", ErrCorrupt, env.Schema)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}
