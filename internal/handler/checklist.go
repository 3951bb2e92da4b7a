package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tax-portal/internal/reconcile"
	"github.com/iliyamo/tax-portal/internal/repository"
)

// ChecklistHandler serves the document completion view: it loads the
// client's documents and questionnaire, runs the reconciler, and
// returns the per-category and aggregate statistics. The result is
// derived fresh on every request, never cached, so staff always see
// the current state.
type ChecklistHandler struct {
	Docs          *repository.DocumentRepo
	Questionnaire *repository.QuestionnaireRepo
	Clients       *repository.ClientRepo
	Rec           *reconcile.Reconciler
}

func NewChecklistHandler(docs *repository.DocumentRepo, qn *repository.QuestionnaireRepo, clients *repository.ClientRepo, rec *reconcile.Reconciler) *ChecklistHandler {
	return &ChecklistHandler{Docs: docs, Questionnaire: qn, Clients: clients, Rec: rec}
}

// Get: GET /v1/clients/:id/checklist
func (h *ChecklistHandler) Get(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Clients.GetByID(ctx, clientID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	docs, err := h.Docs.ListByClient(ctx, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	categories, err := h.Questionnaire.QuestionnaireForClient(ctx, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, h.Rec.Reconcile(docs, categories))
}
