package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iliyamo/tax-portal/internal/model"
)

// deviceIDPattern restricts device ids to the hex strings issued by
// the device-cookie middleware, so the id can safely become part of a
// file name.
var deviceIDPattern = regexp.MustCompile(`^[a-f0-9]{16,64}$`)

// FileStore is the last-resort session tier: one JSON file per device
// under the data directory, holding only the bare user. It survives a
// Redis outage and cookie loss, and a hit here is promoted back into
// the higher tiers by the resolver.
type FileStore struct {
	dir      string
	deviceID string
}

// NewFileStore scopes a file store to one device id. An empty or
// malformed id yields a store that reads and writes nothing.
func NewFileStore(dir, deviceID string) *FileStore {
	if !deviceIDPattern.MatchString(deviceID) {
		deviceID = ""
	}
	return &FileStore{dir: dir, deviceID: deviceID}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, s.deviceID+".json")
}

// Read returns the cached user, (nil, nil) when nothing is cached.
func (s *FileStore) Read(_ context.Context) (*model.User, error) {
	if s.deviceID == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Write persists the bare user for this device. No timestamp is kept;
// freshness is the higher tiers' concern.
func (s *FileStore) Write(_ context.Context, u model.User) error {
	if s.deviceID == "" {
		return ErrUnavailable
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), raw, 0o600)
}

// Clear removes the cached user; a missing file is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	if s.deviceID == "" {
		return nil
	}
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
