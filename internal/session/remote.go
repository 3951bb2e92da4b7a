package session

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessKeyPrefix namespaces session records in Redis; the full key is
// sess:<userID>.
const sessKeyPrefix = "sess:"

// remoteTimeout bounds every Redis round trip so an unreachable store
// degrades to the cookie tier instead of stalling session resolution.
const remoteTimeout = 3 * time.Second

// RemoteStore is the Redis-backed session tier. The client may be nil
// when Redis was not provisioned; every method then reports
// ErrUnavailable and the resolver degrades gracefully.
type RemoteStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRemoteStore wraps a Redis client (possibly nil) with the session
// expiry window used as the key TTL, so the remote tier self-expires
// independently of application logic.
func NewRemoteStore(rdb *redis.Client, ttl time.Duration) *RemoteStore {
	return &RemoteStore{rdb: rdb, ttl: ttl}
}

// Configured reports whether a Redis client was provisioned.
func (s *RemoteStore) Configured() bool { return s != nil && s.rdb != nil }

func sessKey(userID uint64) string {
	return sessKeyPrefix + strconv.FormatUint(userID, 10)
}

// Read fetches the record for a user id. A missing key is (nil, nil);
// an unreadable or corrupt value is an error.
func (s *RemoteStore) Read(ctx context.Context, userID uint64) (*Record, error) {
	if !s.Configured() {
		return nil, ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	raw, err := s.rdb.Get(ctx, sessKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Write stores the record under the owning user's key with the expiry
// window as TTL.
func (s *RemoteStore) Write(ctx context.Context, rec Record) error {
	if !s.Configured() {
		return ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessKey(rec.User.ID), raw, s.ttl).Err()
}

// Clear deletes the record for a user id.
func (s *RemoteStore) Clear(ctx context.Context, userID uint64) error {
	if !s.Configured() {
		return ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	return s.rdb.Del(ctx, sessKey(userID)).Err()
}
