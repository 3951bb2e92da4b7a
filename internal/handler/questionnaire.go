package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tax-portal/internal/model"
	"github.com/iliyamo/tax-portal/internal/repository"
)

// QuestionnaireHandler serves and saves a client's intake answers.
type QuestionnaireHandler struct {
	Questionnaire *repository.QuestionnaireRepo
	Clients       *repository.ClientRepo
}

func NewQuestionnaireHandler(qn *repository.QuestionnaireRepo, clients *repository.ClientRepo) *QuestionnaireHandler {
	return &QuestionnaireHandler{Questionnaire: qn, Clients: clients}
}

type saveAnswersReq struct {
	// Answers maps question key to "yes" | "no" | "na".
	Answers map[string]string `json:"answers"`
}

var validAnswers = map[model.Answer]bool{
	model.AnswerYes: true,
	model.AnswerNo:  true,
	model.AnswerNA:  true,
}

// Get: GET /v1/clients/:id/questionnaire returns the template with the
// client's answers overlaid.
func (h *QuestionnaireHandler) Get(c echo.Context) error {
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

	categories, err := h.Questionnaire.QuestionnaireForClient(ctx, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// Save: PUT /v1/clients/:id/questionnaire upserts the supplied
// answers. Unknown question keys and invalid answer values are
// rejected before anything is written.
func (h *QuestionnaireHandler) Save(c echo.Context) error {
	clientID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req saveAnswersReq
	if err := c.Bind(&req); err != nil || len(req.Answers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "answers required"})
	}

	known := make(map[string]bool)
	for _, cat := range model.DefaultQuestionnaire() {
		for _, q := range cat.Questions {
			known[q.Key] = true
		}
	}
	for key, val := range req.Answers {
		if !known[key] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown question key: " + key})
		}
		if !validAnswers[model.Answer(val)] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid answer for " + key})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Clients.GetByID(ctx, clientID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	for key, val := range req.Answers {
		if err := h.Questionnaire.SaveAnswer(ctx, clientID, key, model.Answer(val)); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
