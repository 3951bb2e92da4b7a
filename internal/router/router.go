package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/tax-portal/internal/config"
	"github.com/iliyamo/tax-portal/internal/handler"
	"github.com/iliyamo/tax-portal/internal/middleware"
	"github.com/iliyamo/tax-portal/internal/model"
	"github.com/iliyamo/tax-portal/internal/session"
)

// Handlers bundles every handler the router wires up, so main builds
// the set once and registration stays in one place.
type Handlers struct {
	Auth          *handler.AuthHandler
	Clients       *handler.ClientHandler
	Documents     *handler.DocumentHandler
	Checklist     *handler.ChecklistHandler
	Questionnaire *handler.QuestionnaireHandler
	Payments      *handler.PaymentHandler
	Export        *handler.ExportHandler
}

// RegisterRoutes registers routes that do not require a session.
// Currently it exposes the health check and the auth entry points.
// Login is rate-limited per client IP when Redis is available.
func RegisterRoutes(e *echo.Echo, h Handlers, sessions *session.Manager, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Unauthenticated auth operations live under /v1/auth. Logout is
	// deliberately open: clearing tiers for a request that carries no
	// resolvable session is a harmless no-op, and a staff member with
	// a corrupt cookie must still be able to sign out.
	auth := e.Group("/v1/auth")
	auth.POST("/login", h.Auth.Login, middleware.LoginLimit(config.LoadLoginLimitConfig(), rdb))
	auth.POST("/logout", h.Auth.Logout)

	// Everything else requires an active session resolved through the
	// tier cascade. Both staff roles may read and work the review
	// queues.
	v1 := e.Group("/v1")
	v1.Use(middleware.RequireSession(sessions))
	v1.Use(middleware.RequireRole(model.RoleAdmin, model.RoleSuperadmin))

	v1.GET("/me", h.Auth.Me)

	v1.GET("/clients", h.Clients.List)
	v1.GET("/clients/:id", h.Clients.Get)
	v1.PATCH("/clients/:id/status", h.Clients.UpdateStatus)

	v1.GET("/clients/:id/documents", h.Documents.ListByClient)
	v1.POST("/clients/:id/documents", h.Documents.Create)
	v1.POST("/documents/:id/approve", h.Documents.Approve)
	v1.POST("/documents/:id/request-reupload", h.Documents.RequestReupload)
	v1.POST("/documents/:id/reuploaded", h.Documents.MarkReuploaded)
	v1.POST("/clients/:id/request-missing", h.Documents.RequestMissing)

	v1.GET("/clients/:id/checklist", h.Checklist.Get)

	v1.GET("/clients/:id/questionnaire", h.Questionnaire.Get)
	v1.PUT("/clients/:id/questionnaire", h.Questionnaire.Save)

	v1.GET("/clients/:id/payments", h.Payments.ListByClient)

	v1.GET("/clients/:id/export", h.Export.Summary)

	// Creation and money are restricted to superadmins.
	admin := e.Group("/v1")
	admin.Use(middleware.RequireSession(sessions))
	admin.Use(middleware.RequireRole(model.RoleSuperadmin))

	admin.POST("/staff", h.Auth.CreateStaff)
	admin.POST("/clients", h.Clients.Create)
	admin.POST("/clients/:id/payments", h.Payments.Create)
}
