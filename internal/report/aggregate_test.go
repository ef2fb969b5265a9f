package report

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/expense-tracker/backend/internal/models"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 12, 0, 0, 0, time.Local)
	return &d
}

// TestSumExpensesCategoryNormalization проверяет нечувствительность
// фильтра категории к регистру и пробелам.
func TestSumExpensesCategoryNormalization(t *testing.T) {
	expenses := []models.Expense{
		{Category: " Food ", Amount: 100},
		{Category: "food", Amount: 50},
		{Category: "Fuel", Amount: 30},
	}

	if got := SumExpenses(expenses, SumFilter{Category: "FOOD"}); got != 150 {
		t.Fatalf("expected 150, got %v", got)
	}
}

// TestSumExpensesDateRange проверяет включение обеих границ диапазона
// и исключение записей без даты.
func TestSumExpensesDateRange(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 10, Date: datePtr(2024, 3, 1)},
		{Amount: 20, Date: datePtr(2024, 3, 15)},
		{Amount: 40, Date: datePtr(2024, 3, 31)},
		{Amount: 80, Date: datePtr(2024, 4, 1)},
		{Amount: 160}, // без даты
	}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local)

	if got := SumExpenses(expenses, SumFilter{From: &from, To: &to}); got != 70 {
		t.Fatalf("expected 70, got %v", got)
	}

	// Без диапазона запись без даты учитывается.
	if got := SumExpenses(expenses, SumFilter{}); got != 310 {
		t.Fatalf("expected 310, got %v", got)
	}
}

// TestSumExpensesBudgetID проверяет фильтр по явной ссылке на бюджет.
func TestSumExpensesBudgetID(t *testing.T) {
	budgetID := uuid.New()
	other := uuid.New()

	expenses := []models.Expense{
		{Amount: 100, BudgetID: &budgetID},
		{Amount: 50, BudgetID: &other},
		{Amount: 25},
	}

	if got := SumExpenses(expenses, SumFilter{BudgetID: &budgetID}); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

// TestGroupByCategoryPartition проверяет, что группировка — разбиение:
// сумма корзин равна сумме коллекции.
func TestGroupByCategoryPartition(t *testing.T) {
	expenses := []models.Expense{
		{Category: "Food", Amount: 100},
		{Category: "Fuel", Amount: 50},
		{Category: "", Amount: 25},
		{Category: "Food", ExpenseAmount: 75},
	}

	totals := GroupByCategory(expenses)

	var want float64
	for _, e := range expenses {
		want += ExpenseAmount(e)
	}
	if got := totals.Sum(); got != want {
		t.Fatalf("expected partition sum %v, got %v", want, got)
	}
}

// TestGroupByCategoryCaseVariants проверяет слияние корзин, различающихся
// только регистром: имя берется из первого появления, сумма общая.
func TestGroupByCategoryCaseVariants(t *testing.T) {
	expenses := []models.Expense{
		{Category: "Food", Amount: 100},
		{Category: "food", Amount: 50},
		{Category: " FOOD ", Amount: 25},
	}

	totals := GroupByCategory(expenses)
	if len(totals) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(totals))
	}
	if totals[0].Category != "Food" || totals[0].Total != 175 {
		t.Fatalf("unexpected bucket: %+v", totals[0])
	}
	if got := totals.Get("FOOD"); got != 175 {
		t.Fatalf("expected 175, got %v", got)
	}
}

// TestGroupByCategoryUncategorized проверяет корзину для пустой категории
// и порядок первого появления.
func TestGroupByCategoryUncategorized(t *testing.T) {
	expenses := []models.Expense{
		{Category: "Fuel", Amount: 50},
		{Category: "  ", Amount: 10},
		{Category: "Fuel", Amount: 30},
	}

	totals := GroupByCategory(expenses)
	if len(totals) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(totals))
	}
	if totals[0].Category != "Fuel" || totals[0].Total != 80 {
		t.Fatalf("unexpected first bucket: %+v", totals[0])
	}
	if totals[1].Category != UncategorizedLabel || totals[1].Total != 10 {
		t.Fatalf("unexpected second bucket: %+v", totals[1])
	}
}

// TestCategoryTotalsTop проверяет ранжирование и устойчивость при равенстве.
func TestCategoryTotalsTop(t *testing.T) {
	totals := CategoryTotals{
		{Category: "A", Total: 10},
		{Category: "B", Total: 30},
		{Category: "C", Total: 30},
		{Category: "D", Total: 5},
	}

	top := totals.Top(3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].Category != "B" || top[1].Category != "C" || top[2].Category != "A" {
		t.Fatalf("unexpected order: %+v", top)
	}
}
