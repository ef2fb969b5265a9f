package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/expense-tracker/backend/internal/auth"
	"example.com/expense-tracker/backend/internal/repository"
)

type SavingsHandler struct {
	Savings *repository.SavingsRepository
	Reports *ReportHandler
}

// NewSavingsHandler создает обработчик цели накоплений.
func NewSavingsHandler(savings *repository.SavingsRepository, reports *ReportHandler) *SavingsHandler {
	return &SavingsHandler{Savings: savings, Reports: reports}
}

type SavingsGoalRequest struct {
	Amount   float64    `json:"amount" validate:"gt=0"`
	Deadline *time.Time `json:"deadline"`
}

// Get возвращает цель накоплений пользователя.
func (h *SavingsHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goal, err := h.Savings.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "savings goal not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, goal)
}

// Put создает или заменяет цель накоплений.
func (h *SavingsHandler) Put(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req SavingsGoalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	goal, err := h.Savings.Upsert(c.Request().Context(), userID, repository.SavingsGoalInput{
		Amount:   req.Amount,
		Deadline: req.Deadline,
	})
	if err != nil {
		return serverError(c)
	}

	h.Reports.NotifyChanged(c.Request().Context(), userID)
	return c.JSON(http.StatusOK, goal)
}

// Delete удаляет цель накоплений.
func (h *SavingsHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.Savings.Delete(c.Request().Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "savings goal not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
