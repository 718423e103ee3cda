package credstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Write(ctx, KeySession, []byte("x")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := store.Read(ctx, KeySession)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "x" {
		t.Fatalf("unexpected record %q", got)
	}

	if err := store.Clear(ctx, KeySession); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := store.Clear(ctx, KeySession); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
	if _, err := store.Read(ctx, KeySession); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte("abc")
	if err := store.Write(ctx, KeySession, original); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	original[0] = 'z'

	got, err := store.Read(ctx, KeySession)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "abc" {
		t.Fatalf("stored record aliases caller buffer: %q", got)
	}

	got[0] = 'z'
	again, err := store.Read(ctx, KeySession)
	if err != nil {
		t.Fatalf("second Read failed: %v", err)
	}
	if string(again) != "abc" {
		t.Fatalf("returned record aliases internal buffer: %q", again)
	}
}
