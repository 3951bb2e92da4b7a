package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tax-portal/internal/middleware"
	"github.com/iliyamo/tax-portal/internal/model"
	"github.com/iliyamo/tax-portal/internal/repository"
	"github.com/iliyamo/tax-portal/internal/session"
	"github.com/iliyamo/tax-portal/internal/utils"
)

// AuthHandler bundles dependencies for staff sign-in. Successful login
// establishes the session in every tier through the resolver; there is
// no separate token response; the signed cookie is the credential.
type AuthHandler struct {
	Staff      *repository.StaffRepo
	Sessions   *session.Manager
	BcryptCost int
}

func NewAuthHandler(staff *repository.StaffRepo, sessions *session.Manager, bcryptCost int) *AuthHandler {
	return &AuthHandler{Staff: staff, Sessions: sessions, BcryptCost: bcryptCost}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createStaffReq struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Password    string   `json:"password"`
	Role        string   `json:"role"` // admin | superadmin
	Permissions []string `json:"permissions"`
}

// Login: verify credentials and establish the session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	acct, err := h.Staff.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !acct.IsActive || !utils.VerifyPassword(acct.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	h.Sessions.ResolverFor(c).Set(ctx, acct.User)

	return c.JSON(http.StatusOK, echo.Map{"user": acct.User})
}

// Logout: best-effort clear of every session tier. Always succeeds
// from the client's point of view.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	h.Sessions.ResolverFor(c).Clear(ctx)
	return c.NoContent(http.StatusNoContent)
}

// CreateStaff provisions a staff account (superadmin only, enforced by
// router). The new account does not get a session; the staff member
// signs in themselves.
func (h *AuthHandler) CreateStaff(c echo.Context) error {
	var req createStaffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/name required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != model.RoleAdmin && role != model.RoleSuperadmin {
		role = model.RoleAdmin
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Staff.Create(ctx, req.Email, req.Name, req.Password, role, req.Permissions, h.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create staff failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "email": req.Email, "role": role})
}

// Me returns the resolved session user (protected route).
func (h *AuthHandler) Me(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not signed in"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
