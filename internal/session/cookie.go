package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/tax-portal/internal/model"
)

// CookieName is the fixed name of the session cookie set by the portal.
const CookieName = "tp_session"

// cookieClaims carries a full session record inside a signed token.
// No exp claim is set on purpose: expiry is enforced by the resolver's
// timestamp check, and an expired cookie must still parse so its user
// id can index the remote tier.
type cookieClaims struct {
	User      model.User `json:"user"`
	Timestamp int64      `json:"ts"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies session cookie values with HS256.
// The secret must match across server instances or every request
// would look signed-out.
type CookieCodec struct {
	secret []byte
}

func NewCookieCodec(secret string) *CookieCodec {
	return &CookieCodec{secret: []byte(secret)}
}

// Encode serializes a record into a signed cookie value.
func (cc *CookieCodec) Encode(rec Record) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, cookieClaims{
		User:      rec.User,
		Timestamp: rec.Timestamp,
	})
	return t.SignedString(cc.secret)
}

// Decode verifies the signature and returns the embedded record. Any
// failure (bad signature, wrong algorithm, corrupt payload) is an
// error; callers treat it as "absent" and clear the cookie.
func (cc *CookieCodec) Decode(value string) (*Record, error) {
	claims := &cookieClaims{}
	tok, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return cc.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid session cookie")
	}
	return &Record{User: claims.User, Timestamp: claims.Timestamp}, nil
}
