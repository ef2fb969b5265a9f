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

type BudgetHandler struct {
	Budgets *repository.BudgetRepository
	Reports *ReportHandler
}

// NewBudgetHandler создает обработчик операций с бюджетами.
func NewBudgetHandler(budgets *repository.BudgetRepository, reports *ReportHandler) *BudgetHandler {
	return &BudgetHandler{Budgets: budgets, Reports: reports}
}

type BudgetRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Amount      float64    `json:"amount" validate:"gt=0"`
	Currency    string     `json:"currency" validate:"omitempty,max=8"`
	Category    string     `json:"category" validate:"required,max=100"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (req BudgetRequest) toInput() repository.BudgetInput {
	return repository.BudgetInput{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Currency:    strings.TrimSpace(req.Currency),
		Category:    strings.TrimSpace(req.Category),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
}

// List возвращает бюджеты пользователя.
func (h *BudgetHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budgets, err := h.Budgets.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, budgets)
}

// Create добавляет бюджет; бюджет существующей категории пополняется.
func (h *BudgetHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	in := req.toInput()
	if in.Category == "" {
		return badRequest(c, "category is required")
	}

	budget, err := h.Budgets.Create(c.Request().Context(), userID, in)
	if err != nil {
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusCreated, budget)
}

// Update изменяет бюджет.
func (h *BudgetHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid budget id")
	}

	var req BudgetRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	budget, err := h.Budgets.Update(c.Request().Context(), userID, budgetID, req.toInput())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, budget)
}

// Delete удаляет бюджет.
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid budget id")
	}

	if err := h.Budgets.Delete(c.Request().Context(), userID, budgetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "budget not found")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.NoContent(http.StatusNoContent)
}
