package session

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// EchoCookieStore binds the signed-cookie tier to one HTTP exchange.
// Reads come from the request, writes and clears go to the response.
// SameSite is always Strict; Secure is set when the request arrived
// over TLS.
type EchoCookieStore struct {
	c     echo.Context
	codec *CookieCodec
	ttl   time.Duration
}

func NewEchoCookieStore(c echo.Context, codec *CookieCodec, ttl time.Duration) *EchoCookieStore {
	return &EchoCookieStore{c: c, codec: codec, ttl: ttl}
}

// Read returns the record from the request cookie, (nil, nil) when the
// cookie is absent, or an error when the value fails verification.
func (s *EchoCookieStore) Read(_ context.Context) (*Record, error) {
	ck, err := s.c.Cookie(CookieName)
	if err != nil {
		// echo returns http.ErrNoCookie when the cookie is missing
		return nil, nil
	}
	return s.codec.Decode(ck.Value)
}

// Write signs the record and sets the cookie with the full expiry
// window.
func (s *EchoCookieStore) Write(_ context.Context, rec Record) error {
	value, err := s.codec.Encode(rec)
	if err != nil {
		return err
	}
	s.c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		Expires:  time.Now().Add(s.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   s.c.Request().TLS != nil,
	})
	return nil
}

// Clear expires the cookie immediately.
func (s *EchoCookieStore) Clear(_ context.Context) error {
	s.c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   s.c.Request().TLS != nil,
	})
	return nil
}
