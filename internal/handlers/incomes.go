package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/expense-tracker/backend/internal/auth"
	"example.com/expense-tracker/backend/internal/repository"
)

type IncomeHandler struct {
	Incomes *repository.IncomeRepository
	Reports *ReportHandler
}

// NewIncomeHandler создает обработчик операций с доходами.
func NewIncomeHandler(incomes *repository.IncomeRepository, reports *ReportHandler) *IncomeHandler {
	return &IncomeHandler{Incomes: incomes, Reports: reports}
}

type IncomeRequest struct {
	Title    string     `json:"title" validate:"required,max=200"`
	Amount   float64    `json:"amount" validate:"gte=0"`
	Currency string     `json:"currency" validate:"omitempty,max=8"`
	Source   string     `json:"source" validate:"omitempty,max=200"`
	Date     *time.Time `json:"date"`
	Notes    string     `json:"notes" validate:"omitempty,max=2000"`
}

func (req IncomeRequest) toInput() repository.IncomeInput {
	return repository.IncomeInput{
		Title:    strings.TrimSpace(req.Title),
		Amount:   req.Amount,
		Currency: strings.TrimSpace(req.Currency),
		Source:   strings.TrimSpace(req.Source),
		Date:     req.Date,
		Notes:    strings.TrimSpace(req.Notes),
	}
}

// List возвращает доходы пользователя.
func (h *IncomeHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	incomes, err := h.Incomes.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, incomes)
}

// Create добавляет доход.
func (h *IncomeHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req IncomeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	income, err := h.Incomes.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusCreated, income)
}

// Update изменяет доход.
func (h *IncomeHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	incomeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid income id")
	}

	var req IncomeRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	income, err := h.Incomes.Update(c.Request().Context(), userID, incomeID, req.toInput())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "income not found")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, income)
}

// Delete удаляет доход.
func (h *IncomeHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	incomeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid income id")
	}

	if err := h.Incomes.Delete(c.Request().Context(), userID, incomeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "income not found")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.NoContent(http.StatusNoContent)
}
