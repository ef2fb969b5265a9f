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

type DebtHandler struct {
	Debts   *repository.DebtRepository
	Reports *ReportHandler
}

// NewDebtHandler создает обработчик операций с долгами.
func NewDebtHandler(debts *repository.DebtRepository, reports *ReportHandler) *DebtHandler {
	return &DebtHandler{Debts: debts, Reports: reports}
}

type DebtRequest struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Amount       float64    `json:"amount" validate:"gt=0"`
	InterestRate *float64   `json:"interest_rate" validate:"omitempty,gte=0,lte=100"`
	DueDate      *time.Time `json:"due_date"`
}

type DebtPaymentRequest struct {
	Amount float64    `json:"amount" validate:"gt=0"`
	Date   *time.Time `json:"date"`
}

func (req DebtRequest) toInput() repository.DebtInput {
	return repository.DebtInput{
		Title:        strings.TrimSpace(req.Title),
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		DueDate:      req.DueDate,
	}
}

// List возвращает долги пользователя.
func (h *DebtHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	debts, err := h.Debts.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, debts)
}

// Create добавляет долг.
func (h *DebtHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req DebtRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	debt, err := h.Debts.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusCreated, debt)
}

// Update изменяет описание долга.
func (h *DebtHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	debtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid debt id")
	}

	var req DebtRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	debt, err := h.Debts.Update(c.Request().Context(), userID, debtID, req.toInput())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "debt not found")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, debt)
}

// AddPayment записывает платеж по долгу.
func (h *DebtHandler) AddPayment(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	debtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid debt id")
	}

	var req DebtPaymentRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	paidAt := time.Now()
	if req.Date != nil {
		paidAt = *req.Date
	}

	debt, err := h.Debts.AddPayment(c.Request().Context(), userID, debtID, req.Amount, paidAt)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "debt not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid payment amount")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, debt)
}

// Delete удаляет долг.
func (h *DebtHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	debtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid debt id")
	}

	if err := h.Debts.Delete(c.Request().Context(), userID, debtID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "debt not found")
		}
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.NoContent(http.StatusNoContent)
}
