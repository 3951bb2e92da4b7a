package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tax-portal/internal/middleware"
	"github.com/iliyamo/tax-portal/internal/model"
	"github.com/iliyamo/tax-portal/internal/queue"
	"github.com/iliyamo/tax-portal/internal/reconcile"
	"github.com/iliyamo/tax-portal/internal/repository"
	queue_publisher "github.com/iliyamo/tax-portal/internal/service"
)

// DocumentHandler covers the document review workflow: listing a
// client's uploads, logging placeholders, and the staff actions
// (approve, request re-upload, request a missing document). The status
// transitions themselves are computed by the reconcile package over
// the in-memory set; this handler persists the outcome and publishes
// the notification intent.
type DocumentHandler struct {
	Docs    *repository.DocumentRepo
	Clients *repository.ClientRepo
}

func NewDocumentHandler(docs *repository.DocumentRepo, clients *repository.ClientRepo) *DocumentHandler {
	return &DocumentHandler{Docs: docs, Clients: clients}
}

type createDocumentReq struct {
	Name       string `json:"name"`
	SectionKey string `json:"section_key"`
	Uploaded   bool   `json:"uploaded"` // false logs a placeholder the client still owes
}

type reuploadReq struct {
	Reason string `json:"reason"`
}

type requestMissingReq struct {
	RequiredDocument string `json:"required_document"`
	Reason           string `json:"reason"`
}

// ListByClient: GET /v1/clients/:id/documents
func (h *DocumentHandler) ListByClient(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	docs, err := h.Docs.ListByClient(ctx, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if docs == nil {
		docs = []model.Document{}
	}
	return c.JSON(http.StatusOK, echo.Map{"documents": docs})
}

// Create: POST /v1/clients/:id/documents logs an upload or a
// placeholder for a document the client still owes.
func (h *DocumentHandler) Create(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req createDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Clients.GetByID(ctx, clientID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	doc := model.Document{
		ClientID:   clientID,
		Name:       req.Name,
		Status:     model.DocMissing,
		SectionKey: strings.TrimSpace(req.SectionKey),
	}
	if req.Uploaded {
		now := time.Now().UTC()
		doc.Status = model.DocPending
		doc.UploadedAt = &now
	}

	id, err := h.Docs.Create(ctx, doc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create document failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Approve: POST /v1/documents/:id/approve
func (h *DocumentHandler) Approve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	doc, docs, err := h.loadDocSet(ctx, id)
	if err != nil {
		return h.docError(c, err)
	}

	updated, err := reconcile.Approve(docs, id)
	if err != nil {
		return h.docError(c, err)
	}
	if err := h.Docs.SetStatus(ctx, id, model.DocApproved, doc.Notes); err != nil {
		return h.docError(c, err)
	}

	staff := middleware.CurrentUser(c)
	ev := queue.DocumentApprovedEvent{
		DocumentID:   doc.ID,
		ClientID:     doc.ClientID,
		DocumentName: doc.Name,
		ApprovedBy:   staffEmail(staff),
		ApprovedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishDocumentApproved(ctx, ev); err != nil {
		log.Printf("document: approve notification dropped: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"document": findDoc(updated, id)})
}

// RequestReupload: POST /v1/documents/:id/request-reupload
func (h *DocumentHandler) RequestReupload(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req reuploadReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	doc, docs, err := h.loadDocSet(ctx, id)
	if err != nil {
		return h.docError(c, err)
	}

	updated, err := reconcile.RequestReupload(docs, id, req.Reason)
	if err != nil {
		return h.docError(c, err)
	}
	reason := strings.TrimSpace(req.Reason)
	if err := h.Docs.SetStatus(ctx, id, model.DocReuploadRequested, reason); err != nil {
		return h.docError(c, err)
	}

	staff := middleware.CurrentUser(c)
	ev := queue.ReuploadRequestedEvent{
		DocumentID:   doc.ID,
		ClientID:     doc.ClientID,
		DocumentName: doc.Name,
		Reason:       reason,
		RequestedBy:  staffEmail(staff),
		RequestedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishReuploadRequested(ctx, ev); err != nil {
		log.Printf("document: reupload notification dropped: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"document": findDoc(updated, id)})
}

// MarkReuploaded: POST /v1/documents/:id/reuploaded. Staff logs that
// the client supplied the corrected file. The version is bumped, the
// upload instant re-stamped, and the status returns to pending review.
func (h *DocumentHandler) MarkReuploaded(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Docs.BumpVersion(ctx, id); err != nil {
		return h.docError(c, err)
	}
	doc, err := h.Docs.GetByID(ctx, id)
	if err != nil {
		return h.docError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"document": doc})
}

// RequestMissing: POST /v1/clients/:id/request-missing. There is no
// document row yet, so this only publishes the notification intent.
func (h *DocumentHandler) RequestMissing(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req requestMissingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
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

	intent, err := reconcile.RequestMissing(clientID, req.RequiredDocument, req.Reason)
	if err != nil {
		return h.docError(c, err)
	}

	staff := middleware.CurrentUser(c)
	ev := queue.MissingDocumentRequestedEvent{
		ClientID:         client.ID,
		ClientName:       client.FullName,
		ClientEmail:      client.Email,
		RequiredDocument: intent.RequiredDocument,
		Reason:           intent.Reason,
		RequestedBy:      staffEmail(staff),
		RequestedAt:      intent.RequestedAt.Format(time.RFC3339),
	}
	if err := queue_publisher.PublishMissingDocumentRequested(ctx, ev); err != nil {
		log.Printf("document: missing-doc notification dropped: %v", err)
	}

	return c.JSON(http.StatusAccepted, echo.Map{"requested": intent.RequiredDocument})
}

// loadDocSet fetches the target document and its client's full set so
// the pure transition functions can operate over it.
func (h *DocumentHandler) loadDocSet(ctx context.Context, id uint64) (model.Document, []model.Document, error) {
	doc, err := h.Docs.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Document{}, nil, reconcile.ErrNotFound
		}
		return model.Document{}, nil, err
	}
	docs, err := h.Docs.ListByClient(ctx, doc.ClientID)
	if err != nil {
		return model.Document{}, nil, err
	}
	return doc, docs, nil
}

// docError translates the reconcile/repository sentinels to HTTP.
func (h *DocumentHandler) docError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, reconcile.ErrNotFound) || errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
	case errors.Is(err, reconcile.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}

func findDoc(docs []model.Document, id uint64) *model.Document {
	for i := range docs {
		if docs[i].ID == id {
			return &docs[i]
		}
	}
	return nil
}

func staffEmail(u *model.User) string {
	if u == nil {
		return ""
	}
	return u.Email
}
