package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tax-portal/internal/reconcile"
	"github.com/iliyamo/tax-portal/internal/repository"
)

// ExportHandler produces the CRA-ready summary: one CSV with the
// client's details, per-category checklist standing, and the payment
// total. The checklist section is reconciled fresh at export time so
// the file always reflects the current document state.
type ExportHandler struct {
	Clients       *repository.ClientRepo
	Docs          *repository.DocumentRepo
	Questionnaire *repository.QuestionnaireRepo
	Payments      *repository.PaymentRepo
	Rec           *reconcile.Reconciler
}

func NewExportHandler(clients *repository.ClientRepo, docs *repository.DocumentRepo, qn *repository.QuestionnaireRepo, payments *repository.PaymentRepo, rec *reconcile.Reconciler) *ExportHandler {
	return &ExportHandler{Clients: clients, Docs: docs, Questionnaire: qn, Payments: payments, Rec: rec}
}

// Summary: GET /v1/clients/:id/export
func (h *ExportHandler) Summary(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	client, err := h.Clients.GetByID(ctx, clientID)
	if err != nil {
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
	totalCents, err := h.Payments.TotalForClient(ctx, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	result := h.Rec.Reconcile(docs, categories)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Client", client.FullName})
	_ = w.Write([]string{"Email", client.Email})
	_ = w.Write([]string{"SIN (last 4)", client.SINLast4})
	_ = w.Write([]string{"Filing Year", strconv.Itoa(client.FilingYear)})
	_ = w.Write([]string{"Status", client.Status})
	_ = w.Write([]string{"Fees Paid", fmt.Sprintf("$%.2f", float64(totalCents)/100)})
	_ = w.Write(nil)
	_ = w.Write([]string{"Category", "Status", "Required", "Uploaded", "Approved", "Pending", "Missing"})
	for _, cat := range result.Categories {
		_ = w.Write([]string{
			cat.Category,
			cat.Status,
			strconv.Itoa(cat.Stats.TotalRequired),
			strconv.Itoa(cat.Stats.TotalUploaded),
			strconv.Itoa(cat.Stats.TotalApproved),
			strconv.Itoa(cat.Stats.TotalPending),
			strconv.Itoa(cat.Stats.TotalMissing),
		})
	}
	_ = w.Write([]string{
		"TOTAL", "",
		strconv.Itoa(result.Totals.TotalRequired),
		strconv.Itoa(result.Totals.TotalUploaded),
		strconv.Itoa(result.Totals.TotalApproved),
		strconv.Itoa(result.Totals.TotalPending),
		strconv.Itoa(result.Totals.TotalMissing),
	})
	w.Flush()
	if err := w.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}

	filename := fmt.Sprintf("summary-%d-%d.csv", client.ID, client.FilingYear)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
