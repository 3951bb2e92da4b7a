package session

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/tax-portal/internal/model"
)

// DefaultTTL is the session expiry window: a record older than this is
// treated as absent and purged on the next read.
const DefaultTTL = 7 * 24 * time.Hour

// Resolver arbitrates between the three replica tiers. Precedence on
// read is remote → cookie → local; the first valid hit wins and the
// rest are skipped. Every tier failure is logged and swallowed; a
// session that cannot be resolved anywhere simply means signed-out.
//
// Remote may be unconfigured (Configured() false) when Redis was not
// provisioned; the resolver then runs on cookie + local alone.
type Resolver struct {
	Remote RemoteTier
	Cookie CookieTier
	Local  LocalTier
	TTL    time.Duration

	// Now is a clock seam for tests; nil means time.Now.
	Now func() time.Time
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Set writes a fresh record for u to every tier, best-effort. A tier
// that cannot be written is logged and skipped; Set never fails from
// the caller's point of view.
func (r *Resolver) Set(ctx context.Context, u model.User) {
	rec := NewRecord(u, r.now())
	if r.Remote != nil && r.Remote.Configured() {
		if err := r.Remote.Write(ctx, rec); err != nil {
			log.Printf("session: remote write failed: %v", err)
		}
	}
	if err := r.Cookie.Write(ctx, rec); err != nil {
		log.Printf("session: cookie write failed: %v", err)
	}
	if err := r.Local.Write(ctx, u); err != nil {
		log.Printf("session: local write failed: %v", err)
	}
}

// Get resolves the current user, or nil when no tier holds a valid
// session.
//
// The cookie is read once up front: when the remote tier is configured
// it serves first as an index (the record's user id keys the remote
// lookup, even if the cookie itself has expired), and only afterwards
// as a value in its own right.
func (r *Resolver) Get(ctx context.Context) *model.User {
	now := r.now()

	cookieRec, err := r.Cookie.Read(ctx)
	if err != nil {
		// Corrupt or tampered cookie: clear it so it is not
		// re-parsed on every request, then fall through to local.
		log.Printf("session: cookie unreadable, clearing: %v", err)
		_ = r.Cookie.Clear(ctx)
		cookieRec = nil
	}

	// Tier 1: remote store, looked up by the cookie's user id.
	if r.Remote != nil && r.Remote.Configured() && cookieRec != nil {
		rec, err := r.Remote.Read(ctx, cookieRec.User.ID)
		if err != nil {
			log.Printf("session: remote read failed: %v", err)
		} else if rec != nil && !rec.Expired(r.TTL, now) {
			return &rec.User
		}
	}

	// Tier 2: the cookie value itself.
	if cookieRec != nil {
		if !cookieRec.Expired(r.TTL, now) {
			return &cookieRec.User
		}
		// Expired everywhere it could matter: purge all tiers so
		// subsequent reads do not re-derive from a stale replica.
		r.Clear(ctx)
		return nil
	}

	// Tier 3: local fallback. No timestamp is tracked there, so a hit
	// is taken at face value and promoted back into cookie + remote.
	u, err := r.Local.Read(ctx)
	if err != nil {
		log.Printf("session: local read failed: %v", err)
		return nil
	}
	if u != nil {
		r.promote(ctx, *u)
		return u
	}
	return nil
}

// promote is the explicit repair step for a local-only hit: it re-runs
// a full Set so the cookie and remote replicas are rehydrated.
func (r *Resolver) promote(ctx context.Context, u model.User) {
	log.Printf("session: promoting local fallback for user %d", u.ID)
	r.Set(ctx, u)
}

// Clear deletes the session from every tier, best-effort. The remote
// key is user-id scoped, so the id is first recovered from the cookie
// (expired is fine) or the local fallback; if neither yields one the
// remote delete is skipped while cookie and local clearing proceed.
func (r *Resolver) Clear(ctx context.Context) {
	if r.Remote != nil && r.Remote.Configured() {
		if id, ok := r.currentUserID(ctx); ok {
			if err := r.Remote.Clear(ctx, id); err != nil {
				log.Printf("session: remote clear failed: %v", err)
			}
		}
	}
	if err := r.Cookie.Clear(ctx); err != nil {
		log.Printf("session: cookie clear failed: %v", err)
	}
	if err := r.Local.Clear(ctx); err != nil {
		log.Printf("session: local clear failed: %v", err)
	}
}

func (r *Resolver) currentUserID(ctx context.Context) (uint64, bool) {
	if rec, err := r.Cookie.Read(ctx); err == nil && rec != nil {
		return rec.User.ID, true
	}
	if u, err := r.Local.Read(ctx); err == nil && u != nil {
		return u.ID, true
	}
	return 0, false
}

// Refresh extends the expiry window: resolve the current user and, if
// one exists, stamp and rewrite the session. A miss is a no-op: no
// tier is touched beyond the reads.
func (r *Resolver) Refresh(ctx context.Context) {
	if u := r.Get(ctx); u != nil {
		r.Set(ctx, *u)
	}
}

// HasActive reports whether any tier currently yields a valid session.
func (r *Resolver) HasActive(ctx context.Context) bool {
	return r.Get(ctx) != nil
}
