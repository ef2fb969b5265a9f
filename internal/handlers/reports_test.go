package handlers

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"example.com/expense-tracker/backend/internal/models"
	"example.com/expense-tracker/backend/internal/report"
)

// TestTrackedSavings проверяет величину накоплений для сравнения вех:
// доход минус расходы и долги.
func TestTrackedSavings(t *testing.T) {
	rep := report.Report{
		KPIs: report.KPISet{TotalIncome: 5000, TotalExpenses: 3000},
		Debts: []models.Debt{
			{Amount: 700},
			{Amount: 300},
		},
	}

	if got := trackedSavings(rep); got != 1000 {
		t.Fatalf("expected 1000, got %v", got)
	}
}

// TestWriteExpensesCSV проверяет заголовок и строки выгрузки расходов.
func TestWriteExpensesCSV(t *testing.T) {
	date := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	rep := report.Report{
		Currency: "USD",
		Expenses: []models.Expense{
			{Title: "Groceries", Amount: 120.5, Category: "Food", Date: &date},
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeExpensesCSV(writer, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	writer.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and 1 record, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "expense_id,title,amount") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Groceries") || !strings.Contains(lines[1], "120.50") {
		t.Fatalf("unexpected record: %s", lines[1])
	}
	// Валюта записи наследуется от отчета.
	if !strings.Contains(lines[1], "USD") {
		t.Fatalf("expected inherited currency: %s", lines[1])
	}
}

// TestWriteOverviewCSV проверяет выгрузку обзора категорий.
func TestWriteOverviewCSV(t *testing.T) {
	rep := report.Report{
		CategoryOverview: []report.CategoryOverviewRow{
			{Category: "Food", Currency: "USD", Budget: 1000, Spent: 750, Remaining: 250, PercentRaw: 75, Status: report.StatusHigh},
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeOverviewCSV(writer, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	writer.Flush()

	if !strings.Contains(buf.String(), "Food,USD,1000.00,750.00,250.00,75.00,High") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

// TestExpenseRequestToInput проверяет обрезку пробелов при нормализации.
func TestExpenseRequestToInput(t *testing.T) {
	req := ExpenseRequest{
		Title:    "  Coffee  ",
		Amount:   4.5,
		Category: " Food ",
		Notes:    "  morning  ",
	}

	in := req.toInput()
	if in.Title != "Coffee" || in.Category != "Food" || in.Notes != "morning" {
		t.Fatalf("unexpected input: %+v", in)
	}
}
