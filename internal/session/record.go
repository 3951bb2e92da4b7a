// Package session resolves the current signed-in staff user from up to
// three replicated storage tiers: a remote Redis store, a signed
// cookie, and a local file fallback. The tiers hold redundant copies
// of the same logical session; the remote store wins when present,
// and a hit in a lower tier is promoted back up. Tier failures are
// never fatal; resolution degrades to the next tier.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/tax-portal/internal/model"
)

// ErrUnavailable is reported by a tier that cannot be reached or is
// not configured. The resolver logs it and falls through to the next
// tier; it is never surfaced to callers.
var ErrUnavailable = errors.New("session tier unavailable")

// Record is the authoritative pairing of a signed-in user and the
// instant the session was created or last refreshed. Timestamp is
// milliseconds since epoch to match what the dashboard client stores.
type Record struct {
	User      model.User `json:"user"`
	Timestamp int64      `json:"timestamp"`
}

// NewRecord builds a Record stamped at now.
func NewRecord(u model.User, now time.Time) Record {
	return Record{User: u, Timestamp: now.UnixMilli()}
}

// Expired reports whether the record's age exceeds ttl at instant now.
// Expired records are treated as absent and purged on the next read.
func (r Record) Expired(ttl time.Duration, now time.Time) bool {
	return now.UnixMilli()-r.Timestamp >= ttl.Milliseconds()
}

// Age returns how long ago the record was stamped.
func (r Record) Age(now time.Time) time.Duration {
	return time.Duration(now.UnixMilli()-r.Timestamp) * time.Millisecond
}

// RemoteTier is the highest-priority replica, keyed by user id, so a
// read needs an id hint (taken from the cookie tier). Configured
// reports whether the backing store was provisioned at all.
type RemoteTier interface {
	Configured() bool
	Read(ctx context.Context, userID uint64) (*Record, error)
	Write(ctx context.Context, rec Record) error
	Clear(ctx context.Context, userID uint64) error
}

// CookieTier holds the signed cookie replica. Read returns (nil, nil)
// when no cookie is present and an error when the value fails
// signature or JSON checks; the resolver force-clears on error so a
// corrupt cookie is not re-parsed on every call.
type CookieTier interface {
	Read(ctx context.Context) (*Record, error)
	Write(ctx context.Context, rec Record) error
	Clear(ctx context.Context) error
}

// LocalTier is the last-resort cache holding only the bare user. No
// timestamp is tracked there, so a hit is always treated as valid and
// immediately promoted into the higher tiers.
type LocalTier interface {
	Read(ctx context.Context) (*model.User, error)
	Write(ctx context.Context, u model.User) error
	Clear(ctx context.Context) error
}
