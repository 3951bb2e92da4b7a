package session

import (
	"context"
	"testing"

	"github.com/iliyamo/tax-portal/internal/model"
)

const testDeviceID = "0123456789abcdef0123456789abcdef"

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, testDeviceID)
	ctx := context.Background()

	if u, err := store.Read(ctx); err != nil || u != nil {
		t.Fatalf("expected empty store, got %v, %v", u, err)
	}

	u := model.User{ID: 8, Email: "cache@office.ca", Role: model.RoleAdmin}
	if err := store.Write(ctx, u); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got == nil || got.ID != 8 || got.Email != u.Email {
		t.Fatalf("expected %v back, got %v", u, got)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if u, err := store.Read(ctx); err != nil || u != nil {
		t.Fatalf("expected cleared store, got %v, %v", u, err)
	}
	// Clearing twice must not fail.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStoreRejectsMalformedDeviceID(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	for _, id := range []string{"", "../../etc/passwd", "SHOUTING", "short"} {
		store := NewFileStore(dir, id)
		if err := store.Write(ctx, model.User{ID: 1}); err == nil {
			t.Fatalf("expected write with device id %q to be refused", id)
		}
		if u, err := store.Read(ctx); err != nil || u != nil {
			t.Fatalf("expected no-op read for device id %q", id)
		}
	}
}

func TestFileStoreIsolatesDevices(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	a := NewFileStore(dir, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	b := NewFileStore(dir, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")

	if err := a.Write(ctx, model.User{ID: 1, Email: "a@office.ca"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if u, err := b.Read(ctx); err != nil || u != nil {
		t.Fatalf("expected device b to be empty, got %v, %v", u, err)
	}
}
