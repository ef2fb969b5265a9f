package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"example.com/expense-tracker/backend/internal/auth"
	"example.com/expense-tracker/backend/internal/models"
	"example.com/expense-tracker/backend/internal/notifications"
	"example.com/expense-tracker/backend/internal/report"
	"example.com/expense-tracker/backend/internal/repository"
)

const (
	exportTypeExpenses = "expenses"
	exportTypeOverview = "overview"
)

const timeLayout = time.RFC3339

type ReportHandler struct {
	Expenses  *repository.ExpenseRepository
	Budgets   *repository.BudgetRepository
	Incomes   *repository.IncomeRepository
	Debts     *repository.DebtRepository
	Recurring *repository.RecurringRepository
	Savings   *repository.SavingsRepository
	Notifier  *notifications.Hub
	Options   report.Options
}

// NewReportHandler создает обработчик отчетов.
func NewReportHandler(
	expenses *repository.ExpenseRepository,
	budgets *repository.BudgetRepository,
	incomes *repository.IncomeRepository,
	debts *repository.DebtRepository,
	recurring *repository.RecurringRepository,
	savings *repository.SavingsRepository,
	notifier *notifications.Hub,
	opts report.Options,
) *ReportHandler {
	return &ReportHandler{
		Expenses:  expenses,
		Budgets:   budgets,
		Incomes:   incomes,
		Debts:     debts,
		Recurring: recurring,
		Savings:   savings,
		Notifier:  notifier,
		Options:   opts,
	}
}

// Dashboard возвращает полный отчет по снимку данных пользователя
// и фиксирует достигнутый уровень накоплений для следующего пересчета.
func (h *ReportHandler) Dashboard(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	rep, err := h.buildReport(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	if err := h.Savings.RecordSavings(c.Request().Context(), userID, trackedSavings(rep)); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, rep)
}

// Alerts возвращает только список уведомлений отчета.
func (h *ReportHandler) Alerts(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	rep, err := h.buildReport(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]string{"alerts": rep.Alerts})
}

// ExportJSON выгружает отчет в JSON-файл.
func (h *ReportHandler) ExportJSON(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	rep, err := h.buildReport(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	filename := "report-" + rep.GeneratedAt.Format("2006-01-02") + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, rep)
}

// ExportCSV выгружает расходы или обзор категорий в CSV-файл.
func (h *ReportHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	exportType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if exportType == "" {
		exportType = exportTypeExpenses
	}

	rep, err := h.buildReport(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	switch exportType {
	case exportTypeExpenses:
		if err := writeExpensesCSV(writer, rep); err != nil {
			return serverError(c)
		}
	case exportTypeOverview:
		if err := writeOverviewCSV(writer, rep); err != nil {
			return serverError(c)
		}
	default:
		return badRequest(c, "invalid export type")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "report-" + rep.GeneratedAt.Format("2006-01-02") + "-" + exportType + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// NotifyChanged пересчитывает отчет после изменения данных и рассылает
// свежие уведомления в SSE-поток пользователя. Ошибки пересчета не
// прерывают исходный запрос.
func (h *ReportHandler) NotifyChanged(ctx context.Context, userID uuid.UUID) {
	if h.Notifier == nil {
		return
	}

	rep, err := h.buildReport(ctx, userID)
	if err != nil {
		return
	}

	if err := h.Savings.RecordSavings(ctx, userID, trackedSavings(rep)); err != nil {
		return
	}

	publishAlerts(h.Notifier, userID, rep.Alerts)
}

// buildReport собирает снимок всех коллекций пользователя параллельно
// и строит по нему отчет.
func (h *ReportHandler) buildReport(ctx context.Context, userID uuid.UUID) (report.Report, error) {
	in := report.Input{Now: time.Now()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.Expenses, err = h.Expenses.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		in.Budgets, err = h.Budgets.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		in.Incomes, err = h.Incomes.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		in.Debts, err = h.Debts.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		in.Recurring, err = h.Recurring.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		goal, err := h.Savings.Get(gctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		in.Goals = []models.SavingsGoal{goal}
		return nil
	})
	g.Go(func() error {
		var err error
		in.PreviousSavings, err = h.Savings.LastKnownSavings(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return report.Report{}, err
	}

	return report.Assemble(in, h.Options), nil
}

// trackedSavings возвращает величину, с которой сравниваются вехи:
// доход минус расходы и долги.
func trackedSavings(rep report.Report) float64 {
	var totalDebts float64
	for _, d := range rep.Debts {
		totalDebts += report.ResolveAmount(d.Amount)
	}
	return rep.KPIs.TotalIncome - rep.KPIs.TotalExpenses - totalDebts
}

func writeExpensesCSV(writer *csv.Writer, rep report.Report) error {
	header := []string{
		"expense_id",
		"title",
		"amount",
		"currency",
		"category",
		"budget_id",
		"date",
		"notes",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, e := range rep.Expenses {
		budgetID := ""
		if e.BudgetID != nil {
			budgetID = e.BudgetID.String()
		}
		date := ""
		if e.Date != nil {
			date = e.Date.Format(timeLayout)
		}
		record := []string{
			e.ID.String(),
			e.Title,
			formatFloat(report.ExpenseAmount(e)),
			report.ResolveCurrency(e.Currency, rep.Currency),
			e.Category,
			budgetID,
			date,
			e.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeOverviewCSV(writer *csv.Writer, rep report.Report) error {
	header := []string{
		"category",
		"currency",
		"budget",
		"spent",
		"remaining",
		"percent_used",
		"status",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rep.CategoryOverview {
		record := []string{
			row.Category,
			row.Currency,
			formatFloat(row.Budget),
			formatFloat(row.Spent),
			formatFloat(row.Remaining),
			formatFloat(row.PercentRaw),
			string(row.Status),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
