package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/expense-tracker/backend/internal/auth"
	"example.com/expense-tracker/backend/internal/models"
	"example.com/expense-tracker/backend/internal/repository"
)

type RecurringHandler struct {
	Recurring *repository.RecurringRepository
	Reports   *ReportHandler
}

// NewRecurringHandler создает обработчик регулярных операций.
func NewRecurringHandler(recurring *repository.RecurringRepository, reports *ReportHandler) *RecurringHandler {
	return &RecurringHandler{Recurring: recurring, Reports: reports}
}

type RecurringRequest struct {
	Title     string               `json:"title" validate:"required,max=200"`
	Amount    float64              `json:"amount" validate:"gte=0"`
	Currency  string               `json:"currency" validate:"omitempty,max=8"`
	Type      models.RecurringType `json:"type" validate:"required,oneof=expense income"`
	Frequency string               `json:"frequency" validate:"omitempty,max=50"`
	NextDue   *time.Time           `json:"next_due"`
}

func (req RecurringRequest) toInput() repository.RecurringInput {
	return repository.RecurringInput{
		Title:     strings.TrimSpace(req.Title),
		Amount:    req.Amount,
		Currency:  strings.TrimSpace(req.Currency),
		Type:      req.Type,
		Frequency: strings.TrimSpace(req.Frequency),
		NextDue:   req.NextDue,
	}
}

// List возвращает регулярные операции пользователя.
func (h *RecurringHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.Recurring.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, items)
}

// Create добавляет регулярную операцию.
func (h *RecurringHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req RecurringRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	item, err := h.Recurring.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusCreated, item)
}

// Update изменяет регулярную операцию.
func (h *RecurringHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid recurring id")
	}

	var req RecurringRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	item, err := h.Recurring.Update(c.Request().Context(), userID, itemID, req.toInput())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "recurring item not found")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, item)
}

// Delete удаляет регулярную операцию.
func (h *RecurringHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid recurring id")
	}

	if err := h.Recurring.Delete(c.Request().Context(), userID, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "recurring item not found")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.NoContent(http.StatusNoContent)
}
