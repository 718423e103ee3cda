package credstore

import (
	"encoding/json"
	"errors"
	"testing"
)

type testPayload struct {
	Token string `json:"token"`
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	blob, err := Encode(testPayload{Token: "abc"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var env struct {
		Schema int `json:"schema"`
	}
	if err := json.Unmarshal(blob, &env); err != nil {
		t.Fatalf("envelope is not valid JSON: %v", err)
	}
	if env.Schema != SchemaVersion {
		t.Fatalf("expected schema %d, got %d", SchemaVersion, env.Schema)
	}

	var out testPayload
	if err := Decode(blob, &out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if out.Token != "abc" {
		t.Fatalf("unexpected payload %+v", out)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	var out testPayload
	if err := Decode([]byte("not json at all"), &out); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestDecodeRejectsUnknownSchema(t *testing.T) {
	var out testPayload
	err := Decode([]byte(`{"schema": 99, "data": {"token": "abc"}}`), &out)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestDecodeRejectsMismatchedData(t *testing.T) {
	blob, err := Encode([]string{"not", "an", "object"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var out testPayload
	if err := Decode(blob, &out); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}
