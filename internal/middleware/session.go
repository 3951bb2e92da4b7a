package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tax-portal/internal/model"
	"github.com/iliyamo/tax-portal/internal/session"
)

// RequireSession returns an Echo middleware that resolves the current
// staff user through the session tier cascade and injects it into the
// request context under "user" (with "role" alongside for the role
// middleware). A request with no resolvable session is rejected with
// 401; the dashboard treats that as signed-out and redirects to
// login, never as an error dialog.
//
// The middleware also extends the expiry window: when the cookie
// record is older than the configured refresh interval the session is
// re-stamped, so an active dashboard keeps its window fresh without a
// client-side timer.
func RequireSession(m *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			res := m.ResolverFor(c)

			u := res.Get(ctx)
			if u == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not signed in"})
			}

			// Re-stamp aging sessions so active staff never hit the
			// seven-day cliff mid-workday.
			if rec, err := res.Cookie.Read(ctx); err == nil && rec != nil {
				if rec.Age(time.Now()) >= m.Refresh {
					res.Set(ctx, *u)
				}
			}

			c.Set("user", u)
			c.Set("role", u.Role)
			return next(c)
		}
	}
}

// CurrentUser pulls the resolved staff user out of the context. It is
// nil on routes that do not run RequireSession.
func CurrentUser(c echo.Context) *model.User {
	if u, ok := c.Get("user").(*model.User); ok {
		return u
	}
	return nil
}
