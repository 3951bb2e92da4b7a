package session

import (
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/tax-portal/internal/model"
)

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec("test-secret")
	rec := NewRecord(model.User{
		ID:          42,
		Email:       "preparer@office.ca",
		Name:        "Pat Preparer",
		Role:        model.RoleSuperadmin,
		Permissions: []string{"clients.write", "exports.run"},
	}, time.Now())

	value, err := codec.Encode(rec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := codec.Decode(value)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.User.ID != rec.User.ID || got.User.Email != rec.User.Email {
		t.Fatalf("user mismatch: %v vs %v", got.User, rec.User)
	}
	if got.Timestamp != rec.Timestamp {
		t.Fatalf("timestamp mismatch: %d vs %d", got.Timestamp, rec.Timestamp)
	}
	if len(got.User.Permissions) != 2 {
		t.Fatalf("permissions lost: %v", got.User.Permissions)
	}
}

func TestCookieCodecRejectsTamperedValue(t *testing.T) {
	codec := NewCookieCodec("test-secret")
	rec := NewRecord(model.User{ID: 1, Role: model.RoleAdmin}, time.Now())
	value, err := codec.Encode(rec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", value)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := codec.Decode(tampered); err == nil {
		t.Fatal("expected tampered cookie to be rejected")
	}
}

func TestCookieCodecRejectsWrongSecret(t *testing.T) {
	value, err := NewCookieCodec("secret-a").Encode(NewRecord(model.User{ID: 1}, time.Now()))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := NewCookieCodec("secret-b").Decode(value); err == nil {
		t.Fatal("expected cookie signed with another secret to be rejected")
	}
}

func TestCookieCodecRejectsGarbage(t *testing.T) {
	if _, err := NewCookieCodec("s").Decode("not-a-token"); err == nil {
		t.Fatal("expected garbage to be rejected")
	}
}

func TestCookieCodecExpiredRecordStillDecodes(t *testing.T) {
	// Expiry is the resolver's job; an eight-day-old cookie must still
	// parse so its user id can index the remote tier.
	codec := NewCookieCodec("test-secret")
	rec := NewRecord(model.User{ID: 6}, time.Now().Add(-8*24*time.Hour))
	value, err := codec.Encode(rec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := codec.Decode(value)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Expired(DefaultTTL, time.Now()) {
		t.Fatal("expected record to read as expired")
	}
	if got.User.ID != 6 {
		t.Fatalf("expected user id 6, got %d", got.User.ID)
	}
}
