package handler

import (
	"context"
	"database/sql"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tax-portal/internal/model"
	"github.com/iliyamo/tax-portal/internal/repository"
)

// ClientHandler exposes the staff-facing client roster.
type ClientHandler struct {
	Clients *repository.ClientRepo
}

func NewClientHandler(clients *repository.ClientRepo) *ClientHandler {
	return &ClientHandler{Clients: clients}
}

var sinLast4Pattern = regexp.MustCompile(`^\d{4}$`)

// clientStatuses is the set accepted by UpdateStatus.
var clientStatuses = map[string]bool{
	model.ClientStatusActive:            true,
	model.ClientStatusAwaitingDocuments: true,
	model.ClientStatusInReview:          true,
	model.ClientStatusFiled:             true,
	model.ClientStatusArchived:          true,
}

type createClientReq struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	SINLast4   string `json:"sin_last4"`
	FilingYear int    `json:"filing_year"`
}

type updateClientStatusReq struct {
	Status string `json:"status"`
}

// List: GET /v1/clients?q= returns the roster with optional name/email search.
func (h *ClientHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	clients, err := h.Clients.List(ctx, c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if clients == nil {
		clients = []model.Client{}
	}
	return c.JSON(http.StatusOK, echo.Map{"clients": clients})
}

// Get: GET /v1/clients/:id
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	client, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"client": client})
}

// Create: POST /v1/clients (superadmin only, enforced by router).
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FullName == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name/email required"})
	}
	if !sinLast4Pattern.MatchString(req.SINLast4) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sin_last4 must be 4 digits"})
	}
	if req.FilingYear < 2000 || req.FilingYear > time.Now().Year() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid filing_year"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Clients.Create(ctx, req.FullName, req.Email, req.SINLast4, req.FilingYear)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create client failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// UpdateStatus: PATCH /v1/clients/:id/status
func (h *ClientHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateClientStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if !clientStatuses[req.Status] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Clients.UpdateStatus(ctx, id, req.Status); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// pathID parses the :id route parameter shared by most handlers.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
