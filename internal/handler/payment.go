package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tax-portal/internal/model"
	"github.com/iliyamo/tax-portal/internal/repository"
)

// PaymentHandler records and lists preparation-fee payments.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
	Clients  *repository.ClientRepo
}

func NewPaymentHandler(payments *repository.PaymentRepo, clients *repository.ClientRepo) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Clients: clients}
}

var payMethods = map[string]bool{
	model.PayMethodCard:      true,
	model.PayMethodETransfer: true,
	model.PayMethodCash:      true,
	model.PayMethodCheque:    true,
}

type createPaymentReq struct {
	AmountCents uint32  `json:"amount_cents"`
	Method      string  `json:"method"`
	Reference   *string `json:"reference"`
	PaidAt      string  `json:"paid_at"` // RFC3339; empty means now
}

// ListByClient: GET /v1/clients/:id/payments
func (h *PaymentHandler) ListByClient(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payments, err := h.Payments.ListByClient(ctx, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	total, err := h.Payments.TotalForClient(ctx, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": payments, "total_cents": total})
}

// Create: POST /v1/clients/:id/payments (superadmin only, enforced by
// router).
func (h *PaymentHandler) Create(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.AmountCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents required"})
	}
	req.Method = strings.ToUpper(strings.TrimSpace(req.Method))
	if !payMethods[req.Method] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown method"})
	}
	paidAt := time.Now().UTC()
	if req.PaidAt != "" {
		t, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "paid_at must be RFC3339"})
		}
		paidAt = t.UTC()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Clients.GetByID(ctx, clientID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	id, err := h.Payments.Create(ctx, clientID, req.AmountCents, req.Method, req.Reference, paidAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record payment failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
