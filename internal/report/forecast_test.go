package report

import (
	"testing"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

// TestForecastMidMonth проверяет экстраполяцию в середине месяца.
func TestForecastMidMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	expenses := []models.Expense{
		{Amount: 1400, Date: datePtr(2024, 3, 10)},
	}
	budgets := []models.Budget{
		{Amount: 4000},
	}

	f := ForecastMonthEnd(expenses, budgets, now)
	if f.Month != "2024-03" {
		t.Fatalf("unexpected month %q", f.Month)
	}
	if f.DaysElapsed != 14 || f.DaysTotal != 31 || f.DaysLeft != 17 {
		t.Fatalf("unexpected day counts: %+v", f)
	}
	if f.AvgDaily != 100 {
		t.Fatalf("expected avg daily 100, got %v", f.AvgDaily)
	}
	if f.MonthEnd != 3100 {
		t.Fatalf("expected month end 3100, got %v", f.MonthEnd)
	}
	if f.ProjectedRemaining != 900 || f.Risk != RiskOK {
		t.Fatalf("unexpected projection: %+v", f)
	}
}

// TestForecastFirstDay проверяет защиту от деления на ноль в первый
// день месяца.
func TestForecastFirstDay(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	expenses := []models.Expense{
		{Amount: 50, Date: datePtr(2024, 3, 1)},
	}

	f := ForecastMonthEnd(expenses, nil, now)
	if f.DaysElapsed != 1 {
		t.Fatalf("expected elapsed clamped to 1, got %d", f.DaysElapsed)
	}
	if f.AvgDaily != 50 {
		t.Fatalf("expected avg daily 50, got %v", f.AvgDaily)
	}
}

// TestForecastRiskTiers проверяет пороги риска, включая нулевой
// суммарный бюджет.
func TestForecastRiskTiers(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	expenses := []models.Expense{
		{Amount: 1400, Date: datePtr(2024, 3, 10)},
	}

	overspend := ForecastMonthEnd(expenses, []models.Budget{{Amount: 3000}}, now)
	if overspend.Risk != RiskOverspend {
		t.Fatalf("expected Overspend, got %v", overspend.Risk)
	}

	tight := ForecastMonthEnd(expenses, []models.Budget{{Amount: 3400}}, now)
	if tight.Risk != RiskTight {
		t.Fatalf("expected Tight, got %v", tight.Risk)
	}

	// Нулевой бюджет при ненулевых тратах — заведомый перерасход,
	// а не деление на ноль.
	zero := ForecastMonthEnd(expenses, nil, now)
	if zero.Risk != RiskOverspend {
		t.Fatalf("expected Overspend on zero budget, got %v", zero.Risk)
	}
}
