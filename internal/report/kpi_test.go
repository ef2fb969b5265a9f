package report

import (
	"testing"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

// TestComputeKPIs проверяет итоговые показатели на небольшом снимке.
func TestComputeKPIs(t *testing.T) {
	expenses := []models.Expense{
		{Category: "Food", Amount: 300, Date: datePtr(2024, 3, 1)},
		{Category: "Fuel", Amount: 100, Date: datePtr(2024, 3, 5)},
	}
	incomes := []models.Income{
		{Amount: 1000, Date: datePtr(2024, 3, 1)},
	}
	budgets := []models.Budget{
		{Category: "Food", Amount: 200},
		{Category: "Fuel", Amount: 500},
	}

	kpi := ComputeKPIs(expenses, incomes, budgets, nil)
	if kpi.TotalIncome != 1000 || kpi.TotalExpenses != 400 || kpi.Net != 600 {
		t.Fatalf("unexpected totals: %+v", kpi)
	}
	if kpi.OverspentCount != 1 {
		t.Fatalf("expected 1 overspent budget, got %d", kpi.OverspentCount)
	}
	if kpi.TopCategory != "Food" {
		t.Fatalf("expected top category Food, got %q", kpi.TopCategory)
	}
	// Интервал наблюдения 1-5 марта, 4 дня.
	if kpi.AvgDailySpend != 100 {
		t.Fatalf("expected avg daily 100, got %v", kpi.AvgDailySpend)
	}
	if kpi.SavingsRatePct == nil || *kpi.SavingsRatePct != 60 {
		t.Fatalf("expected savings rate 60, got %v", kpi.SavingsRatePct)
	}
}

// TestComputeKPIsNoIncome проверяет отсутствие нормы накоплений без дохода.
func TestComputeKPIsNoIncome(t *testing.T) {
	kpi := ComputeKPIs([]models.Expense{{Amount: 10}}, nil, nil, nil)
	if kpi.SavingsRatePct != nil {
		t.Fatalf("expected nil savings rate, got %v", *kpi.SavingsRatePct)
	}
	// Без единой даты интервал по умолчанию 30 дней.
	if kpi.AvgDailySpend != 10.0/30 {
		t.Fatalf("unexpected avg daily: %v", kpi.AvgDailySpend)
	}
}

// TestMonthlyFactor проверяет множители периодичности; bi-weekly
// распознается раньше weekly.
func TestMonthlyFactor(t *testing.T) {
	cases := []struct {
		freq string
		want float64
	}{
		{"", 0},
		{"bi-weekly", 2.165},
		{"biweekly", 2.165},
		{"Weekly", 4.33},
		{"daily", 30},
		{"quarterly", 1.0 / 3},
		{"yearly", 1.0 / 12},
		{"monthly", 1},
		{"whenever", 1},
	}
	for _, tc := range cases {
		if got := MonthlyFactor(tc.freq); got != tc.want {
			t.Fatalf("MonthlyFactor(%q) = %v, want %v", tc.freq, got, tc.want)
		}
	}
}

// TestDebtInterestProjection проверяет формулу месячных процентов.
func TestDebtInterestProjection(t *testing.T) {
	rate := 12.0
	debts := []models.Debt{
		{Title: "Card", Amount: 1200, InterestRate: &rate},
		{Title: "Friend", Amount: 500},
	}

	rows := DebtInterestProjection(debts)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %v", rows)
	}
	if rows[0].MonthlyInterest != 12 {
		t.Fatalf("expected 12 per month, got %v", rows[0].MonthlyInterest)
	}
}

// TestSummarizeExpenses проверяет интервальные корзины; неделя начинается
// с понедельника.
func TestSummarizeExpenses(t *testing.T) {
	// Пятница 15 марта 2024.
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local)

	expenses := []models.Expense{
		{Amount: 10, Date: datePtr(2024, 3, 15)}, // сегодня
		{Amount: 20, Date: datePtr(2024, 3, 14)}, // вчера
		{Amount: 40, Date: datePtr(2024, 3, 11)}, // понедельник этой недели
		{Amount: 80, Date: datePtr(2024, 3, 10)}, // воскресенье, прошлая неделя
		{Amount: 160, Date: datePtr(2024, 2, 20)}, // прошлый месяц
	}

	s := SummarizeExpenses(expenses, now)
	if s.Today != 10 {
		t.Fatalf("today: expected 10, got %v", s.Today)
	}
	if s.Yesterday != 20 {
		t.Fatalf("yesterday: expected 20, got %v", s.Yesterday)
	}
	if s.Week != 70 {
		t.Fatalf("week: expected 70, got %v", s.Week)
	}
	if s.Month != 150 {
		t.Fatalf("month: expected 150, got %v", s.Month)
	}
	if s.LastMonth != 160 {
		t.Fatalf("last month: expected 160, got %v", s.LastMonth)
	}
}
