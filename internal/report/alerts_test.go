package report

import (
	"strings"
	"testing"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

func hasAlert(alerts []string, substr string) bool {
	for _, a := range alerts {
		if strings.Contains(a, substr) {
			return true
		}
	}
	return false
}

func countAlerts(alerts []string, substr string) int {
	n := 0
	for _, a := range alerts {
		if strings.Contains(a, substr) {
			n++
		}
	}
	return n
}

// TestBudgetTierAlertsSingleMessage проверяет, что перерасходованный
// бюджет дает единственное сообщение старшего яруса, а не каскад.
func TestBudgetTierAlertsSingleMessage(t *testing.T) {
	progress := []BudgetProgress{
		{Category: "Food", Currency: "USD", Budget: 1000, Spent: 1200, PercentRaw: 120},
	}

	alerts := budgetTierAlerts(progress, DefaultRuleConfig())
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d: %v", len(alerts), alerts)
	}
	if !strings.Contains(alerts[0], `Overspent in "Food"`) {
		t.Fatalf("unexpected alert: %q", alerts[0])
	}
}

// TestBudgetTierAlertsLadder проверяет тексты каждого яруса.
func TestBudgetTierAlertsLadder(t *testing.T) {
	cfg := DefaultRuleConfig()
	cases := []struct {
		pct  float64
		want string
	}{
		{95, `Nearly overspent: "Food" budget 90%+ used`},
		{80, `Warning: "Food" budget 75% used`},
		{60, `Half of "Food" budget is used`},
		{10, `Good! "Food" spending is under 25%`},
	}
	for _, tc := range cases {
		progress := []BudgetProgress{{Category: "Food", Spent: 1, PercentRaw: tc.pct}}
		alerts := budgetTierAlerts(progress, cfg)
		if len(alerts) != 1 || alerts[0] != tc.want {
			t.Fatalf("pct %v: got %v, want %q", tc.pct, alerts, tc.want)
		}
	}
}

// TestNegativeSavingsAlert проверяет сообщение о дефиците: доход 2000,
// расходы 2500, долги 500 — дефицит 1000.
func TestNegativeSavingsAlert(t *testing.T) {
	in := AlertInput{
		Expenses:      []models.Expense{{Title: "Rent", Amount: 2500}},
		TotalIncome:   2000,
		TotalExpenses: 2500,
		TotalDebts:    500,
		Currency:      "USD",
		Now:           time.Now(),
	}

	alerts := EvaluateAlerts(in, DefaultRuleConfig())
	want := "Negative savings: expenses exceed income by USD 1000.00"
	if !hasAlert(alerts, want) {
		t.Fatalf("expected %q in %v", want, alerts)
	}
}

// TestMilestoneAlerts проверяет пересечение вех между снимками:
// пройденные ранее не повторяются, пропущенные добираются все.
func TestMilestoneAlerts(t *testing.T) {
	cfg := DefaultRuleConfig()

	alerts := milestoneAlerts(4200, 11000, "USD", cfg)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 milestones, got %v", alerts)
	}
	if !strings.Contains(alerts[0], "5000") || !strings.Contains(alerts[1], "10000") {
		t.Fatalf("unexpected milestones: %v", alerts)
	}

	// Повторный расчет с тем же состоянием ничего не дает.
	if again := milestoneAlerts(11000, 11000, "USD", cfg); len(again) != 0 {
		t.Fatalf("expected no repeats, got %v", again)
	}

	// Снижение накоплений тоже не дает вех.
	if down := milestoneAlerts(11000, 9000, "USD", cfg); len(down) != 0 {
		t.Fatalf("expected nothing on decrease, got %v", down)
	}
}

// TestHighInterestAlerts проверяет порог ставки и пропуск долгов без ставки.
func TestHighInterestAlerts(t *testing.T) {
	high := 22.5
	low := 5.0
	debts := []models.Debt{
		{Title: "Card", Amount: 3000, Remaining: 1500, InterestRate: &high},
		{Title: "Family", Amount: 1000, InterestRate: &low},
		{Title: "Friend", Amount: 500},
	}

	alerts := highInterestAlerts(debts, "USD", DefaultRuleConfig())
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %v", alerts)
	}
	want := `High interest debt: "Card" (USD 1500.00) at 22.5% interest rate`
	if alerts[0] != want {
		t.Fatalf("got %q, want %q", alerts[0], want)
	}
}

// TestDueSoonAlerts проверяет окно напоминаний: скорые и просроченные
// платежи попадают, далекие и оплаченные долги нет.
func TestDueSoonAlerts(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	soon := now.Add(48 * time.Hour)
	overdue := now.Add(-24 * time.Hour)
	far := now.Add(10 * 24 * time.Hour)

	recurring := []models.RecurringItem{
		{Title: "Netflix", Amount: 15, NextDue: &soon},
		{Title: "Gym", Amount: 40, NextDue: &far},
		{Title: "Rent", Amount: 900, NextDue: &overdue},
	}
	debts := []models.Debt{
		{Title: "Loan", Amount: 2000, Remaining: 700, DueDate: &soon},
		{Title: "Old", Amount: 100, DueDate: &soon, Paid: true},
	}

	alerts := dueSoonAlerts(recurring, debts, "USD", now, DefaultRuleConfig())
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %v", alerts)
	}
	if countAlerts(alerts, "Netflix") != 1 || countAlerts(alerts, "Rent") != 1 {
		t.Fatalf("missing recurring reminders: %v", alerts)
	}
	if !hasAlert(alerts, `Debt "Loan" of USD 700.00`) {
		t.Fatalf("missing debt reminder: %v", alerts)
	}
	if hasAlert(alerts, "Gym") || hasAlert(alerts, "Old") {
		t.Fatalf("unexpected reminders: %v", alerts)
	}
}

// TestLargeExpenseAlert проверяет порог крупной траты.
func TestLargeExpenseAlert(t *testing.T) {
	expenses := []models.Expense{
		{Title: "Laptop", Amount: 6500, Currency: "USD"},
		{Title: "Coffee", Amount: 4},
	}

	alerts := largeExpenseAlerts(expenses, "USD", DefaultRuleConfig())
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %v", alerts)
	}
	if !strings.Contains(alerts[0], `"Laptop"`) {
		t.Fatalf("unexpected alert: %q", alerts[0])
	}
}

// TestEvaluateAlertsEmptyState проверяет подсказку для пустого аккаунта.
func TestEvaluateAlertsEmptyState(t *testing.T) {
	alerts := EvaluateAlerts(AlertInput{Currency: "USD", Now: time.Now()}, DefaultRuleConfig())
	if !hasAlert(alerts, "Add your first expense to start tracking!") {
		t.Fatalf("expected onboarding tip, got %v", alerts)
	}
}

// TestMonthOverBudgetAlert проверяет сравнение месячных трат с общим бюджетом.
func TestMonthOverBudgetAlert(t *testing.T) {
	in := AlertInput{
		Expenses:    []models.Expense{{Title: "x", Amount: 1}},
		TotalIncome: 5000,
		MonthSpent:  3200,
		TotalBudget: 3000,
		Currency:    "USD",
		Now:         time.Now(),
	}

	alerts := EvaluateAlerts(in, DefaultRuleConfig())
	if !hasAlert(alerts, "This month's expenses exceed total budget!") {
		t.Fatalf("expected month-over-budget alert, got %v", alerts)
	}
}
