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

type ExpenseHandler struct {
	Expenses *repository.ExpenseRepository
	Reports  *ReportHandler
}

// NewExpenseHandler создает обработчик операций с расходами.
func NewExpenseHandler(expenses *repository.ExpenseRepository, reports *ReportHandler) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses, Reports: reports}
}

type ExpenseRequest struct {
	Title         string     `json:"title" validate:"required,max=200"`
	Amount        float64    `json:"amount" validate:"gte=0"`
	ExpenseAmount float64    `json:"expenseAmount" validate:"gte=0"`
	Currency      string     `json:"currency" validate:"omitempty,max=8"`
	Category      string     `json:"category" validate:"omitempty,max=100"`
	BudgetID      *uuid.UUID `json:"budget_id"`
	Date          *time.Time `json:"date"`
	Notes         string     `json:"notes" validate:"omitempty,max=2000"`
}

func (req ExpenseRequest) toInput() repository.ExpenseInput {
	return repository.ExpenseInput{
		Title:         strings.TrimSpace(req.Title),
		Amount:        req.Amount,
		ExpenseAmount: req.ExpenseAmount,
		Currency:      strings.TrimSpace(req.Currency),
		Category:      strings.TrimSpace(req.Category),
		BudgetID:      req.BudgetID,
		Date:          req.Date,
		Notes:         strings.TrimSpace(req.Notes),
	}
}

// List возвращает расходы пользователя.
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenses, err := h.Expenses.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, expenses)
}

// Create добавляет расход и пересчитывает уведомления.
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	in := req.toInput()
	if in.Title == "" {
		return badRequest(c, "title is required")
	}

	expense, err := h.Expenses.Create(c.Request().Context(), userID, in)
	if err != nil {
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusCreated, expense)
}

// Update изменяет расход и пересчитывает уведомления.
func (h *ExpenseHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	var req ExpenseRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	in := req.toInput()
	if in.Title == "" {
		return badRequest(c, "title is required")
	}

	expense, err := h.Expenses.Update(c.Request().Context(), userID, expenseID, in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, expense)
}

// Delete удаляет расход.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid expense id")
	}

	if err := h.Expenses.Delete(c.Request().Context(), userID, expenseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.NoContent(http.StatusNoContent)
}
