package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/tax-portal/internal/model"
)

// fakeRemote is an in-memory RemoteTier with injectable failures.
type fakeRemote struct {
	configured bool
	recs       map[uint64]Record
	readErr    error
	writes     int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{configured: true, recs: map[uint64]Record{}}
}

func (f *fakeRemote) Configured() bool { return f.configured }

func (f *fakeRemote) Read(_ context.Context, userID uint64) (*Record, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	rec, ok := f.recs[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeRemote) Write(_ context.Context, rec Record) error {
	f.writes++
	f.recs[rec.User.ID] = rec
	return nil
}

func (f *fakeRemote) Clear(_ context.Context, userID uint64) error {
	delete(f.recs, userID)
	return nil
}

// fakeCookie is an in-memory CookieTier.
type fakeCookie struct {
	rec     *Record
	readErr error
	writes  int
}

func (f *fakeCookie) Read(context.Context) (*Record, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.rec, nil
}

func (f *fakeCookie) Write(_ context.Context, rec Record) error {
	f.writes++
	f.rec = &rec
	return nil
}

func (f *fakeCookie) Clear(context.Context) error {
	f.rec = nil
	f.readErr = nil
	return nil
}

// fakeLocal is an in-memory LocalTier.
type fakeLocal struct {
	u      *model.User
	writes int
}

func (f *fakeLocal) Read(context.Context) (*model.User, error) { return f.u, nil }

func (f *fakeLocal) Write(_ context.Context, u model.User) error {
	f.writes++
	f.u = &u
	return nil
}

func (f *fakeLocal) Clear(context.Context) error {
	f.u = nil
	return nil
}

func testUser(id uint64, email string) model.User {
	return model.User{ID: id, Email: email, Name: "Test Staff", Role: model.RoleAdmin}
}

func newTestResolver(remote *fakeRemote, cookie *fakeCookie, local *fakeLocal, now time.Time) *Resolver {
	return &Resolver{
		Remote: remote,
		Cookie: cookie,
		Local:  local,
		TTL:    DefaultTTL,
		Now:    func() time.Time { return now },
	}
}

func TestGetPrefersRemoteOverStaleCookie(t *testing.T) {
	now := time.Now()
	remote := newFakeRemote()
	cookie := &fakeCookie{}
	local := &fakeLocal{}
	r := newTestResolver(remote, cookie, local, now)

	// Remote holds a fresh record; the cookie holds a stale one for
	// the same user with outdated details.
	fresh := testUser(7, "fresh@office.ca")
	remote.recs[7] = NewRecord(fresh, now.Add(-time.Hour))

	stale := testUser(7, "stale@office.ca")
	staleRec := NewRecord(stale, now.Add(-8*24*time.Hour))
	cookie.rec = &staleRec

	got := r.Get(context.Background())
	if got == nil {
		t.Fatal("expected a user, got nil")
	}
	if got.Email != "fresh@office.ca" {
		t.Fatalf("expected remote record to win, got %q", got.Email)
	}
}

func TestGetExpiredCookiePurgesAllTiers(t *testing.T) {
	now := time.Now()
	remote := &fakeRemote{configured: false}
	cookie := &fakeCookie{}
	local := &fakeLocal{}
	r := newTestResolver(remote, cookie, local, now)

	u := testUser(3, "old@office.ca")
	rec := NewRecord(u, now.Add(-8*24*time.Hour))
	cookie.rec = &rec
	local.u = &u

	if got := r.Get(context.Background()); got != nil {
		t.Fatalf("expected nil for expired session, got %v", got)
	}
	if cookie.rec != nil {
		t.Fatal("expected cookie tier to be purged")
	}
	if local.u != nil {
		t.Fatal("expected local tier to be purged")
	}
	// A second read must not re-derive the session from anywhere.
	if got := r.Get(context.Background()); got != nil {
		t.Fatalf("expected nil on second read, got %v", got)
	}
}

func TestGetLocalFallbackPromotesToHigherTiers(t *testing.T) {
	now := time.Now()
	remote := newFakeRemote()
	cookie := &fakeCookie{}
	local := &fakeLocal{}
	r := newTestResolver(remote, cookie, local, now)

	u := testUser(11, "survivor@office.ca")
	local.u = &u

	got := r.Get(context.Background())
	if got == nil || got.ID != 11 {
		t.Fatalf("expected local fallback user, got %v", got)
	}
	if cookie.rec == nil || cookie.rec.User.ID != 11 {
		t.Fatal("expected cookie tier to be rehydrated")
	}
	if _, ok := remote.recs[11]; !ok {
		t.Fatal("expected remote tier to be rehydrated")
	}
}

func TestRefreshWithoutSessionWritesNothing(t *testing.T) {
	remote := newFakeRemote()
	cookie := &fakeCookie{}
	local := &fakeLocal{}
	r := newTestResolver(remote, cookie, local, time.Now())

	r.Refresh(context.Background())

	if remote.writes != 0 || cookie.writes != 0 || local.writes != 0 {
		t.Fatalf("expected no writes, got remote=%d cookie=%d local=%d",
			remote.writes, cookie.writes, local.writes)
	}
}

func TestSetThenGetRoundTrips(t *testing.T) {
	now := time.Now()
	remote := newFakeRemote()
	cookie := &fakeCookie{}
	local := &fakeLocal{}
	r := newTestResolver(remote, cookie, local, now)

	u := testUser(5, "roundtrip@office.ca")
	r.Set(context.Background(), u)

	got := r.Get(context.Background())
	if got == nil || got.ID != 5 || got.Email != u.Email {
		t.Fatalf("expected %v back, got %v", u, got)
	}
}

func TestGetRemoteFailureFallsThroughToCookie(t *testing.T) {
	now := time.Now()
	remote := newFakeRemote()
	remote.readErr = errors.New("connection refused")
	cookie := &fakeCookie{}
	local := &fakeLocal{}
	r := newTestResolver(remote, cookie, local, now)

	u := testUser(9, "degraded@office.ca")
	rec := NewRecord(u, now.Add(-time.Minute))
	cookie.rec = &rec

	got := r.Get(context.Background())
	if got == nil || got.ID != 9 {
		t.Fatalf("expected cookie tier user despite remote failure, got %v", got)
	}
}

func TestGetCorruptCookieClearedAndLocalUsed(t *testing.T) {
	now := time.Now()
	remote := newFakeRemote()
	cookie := &fakeCookie{readErr: errors.New("signature invalid")}
	local := &fakeLocal{}
	r := newTestResolver(remote, cookie, local, now)

	u := testUser(13, "rescued@office.ca")
	local.u = &u

	got := r.Get(context.Background())
	if got == nil || got.ID != 13 {
		t.Fatalf("expected local user after corrupt cookie, got %v", got)
	}
	if cookie.readErr != nil {
		t.Fatal("expected corrupt cookie to be force-cleared")
	}
}

func TestRefreshExtendsTimestamp(t *testing.T) {
	start := time.Now()
	remote := newFakeRemote()
	cookie := &fakeCookie{}
	local := &fakeLocal{}
	r := newTestResolver(remote, cookie, local, start)

	u := testUser(2, "active@office.ca")
	r.Set(context.Background(), u)
	first := cookie.rec.Timestamp

	// Same session refreshed a day later carries a newer stamp.
	r.Now = func() time.Time { return start.Add(24 * time.Hour) }
	r.Refresh(context.Background())

	if cookie.rec.Timestamp <= first {
		t.Fatalf("expected refreshed timestamp > %d, got %d", first, cookie.rec.Timestamp)
	}
	if rec := remote.recs[2]; rec.Timestamp != cookie.rec.Timestamp {
		t.Fatal("expected remote and cookie replicas to agree after refresh")
	}
}

func TestHasActive(t *testing.T) {
	now := time.Now()
	r := newTestResolver(newFakeRemote(), &fakeCookie{}, &fakeLocal{}, now)

	if r.HasActive(context.Background()) {
		t.Fatal("expected no active session initially")
	}
	r.Set(context.Background(), testUser(1, "one@office.ca"))
	if !r.HasActive(context.Background()) {
		t.Fatal("expected an active session after Set")
	}
}
