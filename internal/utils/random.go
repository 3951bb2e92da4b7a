package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewDeviceID returns a 32-character hex identifier used to key the
// local session fallback file for one browser/device. It is stored in
// a long-lived unsigned cookie; the id carries no identity, it only
// scopes the fallback cache.
func NewDeviceID() (string, error) {
	return randomHex(16)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
