package session

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tax-portal/internal/utils"
)

// DeviceCookieName identifies this browser/device so the local
// fallback tier can be scoped per device. The cookie is unsigned and
// carries no identity.
const DeviceCookieName = "tp_device"

// deviceCookieMaxAge keeps the device id around far longer than any
// session, so the fallback file survives sign-outs.
const deviceCookieMaxAge = 10 * 365 * 24 * time.Hour

// Manager holds the long-lived session dependencies and builds a
// per-request Resolver bound to that request's cookies. The remote
// store and codec are shared; the cookie and local tiers are scoped to
// the exchange.
type Manager struct {
	Remote  RemoteTier
	Codec   *CookieCodec
	TTL     time.Duration
	Refresh time.Duration // minimum record age before a re-stamp
	DataDir string
}

// NewManager wires the shared tiers.
func NewManager(remote RemoteTier, codec *CookieCodec, ttl, refresh time.Duration, dataDir string) *Manager {
	return &Manager{Remote: remote, Codec: codec, TTL: ttl, Refresh: refresh, DataDir: dataDir}
}

// ResolverFor builds the resolver for one request, issuing a device id
// cookie when the browser does not present one yet.
func (m *Manager) ResolverFor(c echo.Context) *Resolver {
	return &Resolver{
		Remote: m.Remote,
		Cookie: NewEchoCookieStore(c, m.Codec, m.TTL),
		Local:  NewFileStore(m.DataDir, m.deviceID(c)),
		TTL:    m.TTL,
	}
}

// deviceID returns the request's device id, minting and setting one
// when absent. A failed mint leaves the id empty, which disables the
// local tier for this exchange only.
func (m *Manager) deviceID(c echo.Context) string {
	if ck, err := c.Cookie(DeviceCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	id, err := utils.NewDeviceID()
	if err != nil {
		log.Printf("session: device id mint failed: %v", err)
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     DeviceCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(deviceCookieMaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   c.Request().TLS != nil,
	})
	return id
}
