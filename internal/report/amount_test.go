package report

import (
	"math"
	"testing"

	"example.com/expense-tracker/backend/internal/models"
)

// TestResolveAmount проверяет приоритет кандидатов и защиту от NaN.
func TestResolveAmount(t *testing.T) {
	if got := ResolveAmount(math.NaN(), 42); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}

	if got := ResolveAmount(0, 15); got != 15 {
		t.Fatalf("expected fallback past zero, got %v", got)
	}

	if got := ResolveAmount(math.NaN(), math.Inf(1)); got != 0 {
		t.Fatalf("expected 0 for no usable candidate, got %v", got)
	}

	if got := ResolveAmount(); got != 0 {
		t.Fatalf("expected 0 for empty candidates, got %v", got)
	}
}

// TestExpenseAmount проверяет приоритет устаревшего поля expenseAmount.
func TestExpenseAmount(t *testing.T) {
	e := models.Expense{Amount: 100, ExpenseAmount: 250}
	if got := ExpenseAmount(e); got != 250 {
		t.Fatalf("expected legacy field to win, got %v", got)
	}

	e = models.Expense{Amount: 100}
	if got := ExpenseAmount(e); got != 100 {
		t.Fatalf("expected canonical field, got %v", got)
	}
}

// TestResolveCurrency проверяет выбор явной валюты и запасной.
func TestResolveCurrency(t *testing.T) {
	if got := ResolveCurrency("EUR", "USD"); got != "EUR" {
		t.Fatalf("expected EUR, got %s", got)
	}
	if got := ResolveCurrency("", "USD"); got != "USD" {
		t.Fatalf("expected USD, got %s", got)
	}
}

// TestPrimaryCurrency проверяет порядок выбора: бюджеты, расходы, запасная.
func TestPrimaryCurrency(t *testing.T) {
	budgets := []models.Budget{{Currency: ""}, {Currency: "INR"}}
	expenses := []models.Expense{{Currency: "EUR"}}

	if got := PrimaryCurrency(budgets, expenses, "USD"); got != "INR" {
		t.Fatalf("expected INR from budgets, got %s", got)
	}

	if got := PrimaryCurrency(nil, expenses, "USD"); got != "EUR" {
		t.Fatalf("expected EUR from expenses, got %s", got)
	}

	if got := PrimaryCurrency(nil, nil, "USD"); got != "USD" {
		t.Fatalf("expected fallback USD, got %s", got)
	}
}
