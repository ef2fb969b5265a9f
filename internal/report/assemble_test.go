package report

import (
	"reflect"
	"testing"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

func sampleInput(now time.Time) Input {
	return Input{
		Expenses: []models.Expense{
			{Title: "Groceries", Category: "Food", Amount: 750, Currency: "USD", Date: datePtr(2024, 3, 5)},
			{Title: "Petrol", Category: "Fuel", Amount: 80, Date: datePtr(2024, 3, 7)},
		},
		Budgets: []models.Budget{
			{Name: "Food", Category: "Food", Amount: 1000, Currency: "USD"},
		},
		Incomes: []models.Income{
			{Title: "Salary", Amount: 3000, Date: datePtr(2024, 3, 1)},
		},
		Now: now,
	}
}

// TestAssembleDeterministic проверяет, что один и тот же снимок с одним
// и тем же "сейчас" дает идентичный отчет.
func TestAssembleDeterministic(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	in := sampleInput(now)
	opts := DefaultOptions()

	first := Assemble(in, opts)
	second := Assemble(in, opts)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ between identical runs")
	}
}

// TestAssembleOverview проверяет обзор категорий: категория без бюджета
// присутствует со статусом OK, строки отсортированы по алфавиту.
func TestAssembleOverview(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	rep := Assemble(sampleInput(now), DefaultOptions())

	if len(rep.CategoryOverview) != 2 {
		t.Fatalf("expected 2 overview rows, got %+v", rep.CategoryOverview)
	}

	food := rep.CategoryOverview[0]
	if food.Category != "Food" || food.Spent != 750 || food.Status != StatusHigh {
		t.Fatalf("unexpected food row: %+v", food)
	}

	fuel := rep.CategoryOverview[1]
	if fuel.Category != "Fuel" || fuel.Budget != 0 || fuel.Spent != 80 {
		t.Fatalf("unexpected fuel row: %+v", fuel)
	}
	if fuel.Status != StatusOK {
		t.Fatalf("category without budget must be OK, got %v", fuel.Status)
	}
	if fuel.Remaining != -80 {
		t.Fatalf("overview remaining keeps sign, got %v", fuel.Remaining)
	}
}

// TestAssembleOverviewCaseVariants проверяет, что расходы с категориями,
// различающимися регистром, попадают в одну строку обзора и что обзор
// сходится с прогрессом бюджета и с общей суммой расходов.
func TestAssembleOverviewCaseVariants(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	in := Input{
		Now: now,
		Expenses: []models.Expense{
			{Category: "Food", Amount: 100, Date: datePtr(2024, 3, 10)},
			{Category: "food", Amount: 50, Date: datePtr(2024, 3, 11)},
		},
		Budgets: []models.Budget{{Category: "Food", Amount: 1000, Currency: "USD"}},
	}

	rep := Assemble(in, DefaultOptions())

	if len(rep.CategoryOverview) != 1 {
		t.Fatalf("expected 1 overview row, got %+v", rep.CategoryOverview)
	}
	row := rep.CategoryOverview[0]
	if row.Category != "Food" || row.Spent != 150 {
		t.Fatalf("unexpected overview row: %+v", row)
	}

	if len(rep.BudgetProgress) != 1 || rep.BudgetProgress[0].Spent != 150 {
		t.Fatalf("unexpected budget progress: %+v", rep.BudgetProgress)
	}
	if row.Spent != rep.BudgetProgress[0].Spent {
		t.Fatalf("overview spent %v diverges from budget progress %v", row.Spent, rep.BudgetProgress[0].Spent)
	}

	var total float64
	for _, r := range rep.CategoryOverview {
		total += r.Spent
	}
	if total != rep.KPIs.TotalExpenses {
		t.Fatalf("overview total %v must equal expenses total %v", total, rep.KPIs.TotalExpenses)
	}
}

// TestAssembleCurrencyAndSavings проверяет выбор валюты и расчет
// накоплений от дохода и расходов.
func TestAssembleCurrencyAndSavings(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	in := sampleInput(now)
	deadline := now.AddDate(0, 0, 30)
	in.Goals = []models.SavingsGoal{{Amount: 5000, Deadline: &deadline}}

	rep := Assemble(in, DefaultOptions())
	if rep.Currency != "USD" {
		t.Fatalf("expected USD, got %q", rep.Currency)
	}
	if rep.Savings.Current != 2170 {
		t.Fatalf("expected savings 2170, got %v", rep.Savings.Current)
	}
	if !rep.Savings.HasGoal || rep.Savings.Target != 5000 {
		t.Fatalf("unexpected savings state: %+v", rep.Savings)
	}
}

// TestAssembleEmptyInput проверяет деградацию на пустом снимке: отчет
// строится и содержит подсказку первого шага.
func TestAssembleEmptyInput(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	rep := Assemble(Input{Now: now}, DefaultOptions())

	if rep.Currency != "USD" {
		t.Fatalf("expected fallback currency, got %q", rep.Currency)
	}
	if len(rep.CategoryOverview) != 0 || len(rep.BudgetProgress) != 0 {
		t.Fatalf("expected empty sections, got %+v", rep)
	}
	if !hasAlert(rep.Alerts, "Add your first expense to start tracking!") {
		t.Fatalf("expected onboarding tip, got %v", rep.Alerts)
	}
}

// TestTopExpensesStable проверяет ранжирование и устойчивый порядок
// при равных суммах.
func TestTopExpensesStable(t *testing.T) {
	expenses := []models.Expense{
		{Title: "A", Amount: 100},
		{Title: "B", Amount: 300},
		{Title: "C", Amount: 100},
		{Title: "D", Amount: 500},
	}

	top := TopExpenses(expenses, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3, got %d", len(top))
	}
	if top[0].Title != "D" || top[1].Title != "B" || top[2].Title != "A" {
		t.Fatalf("unexpected order: %v %v %v", top[0].Title, top[1].Title, top[2].Title)
	}
}

// TestAssembleTopCategoriesLimit проверяет, что размер топа категорий
// берется из настроек сборки.
func TestAssembleTopCategoriesLimit(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	in := Input{
		Now: now,
		Expenses: []models.Expense{
			{Category: "Food", Amount: 300},
			{Category: "Fuel", Amount: 200},
			{Category: "Fun", Amount: 100},
		},
	}

	opts := DefaultOptions()
	opts.TopCategoriesLimit = 2

	rep := Assemble(in, opts)
	if len(rep.TopCategories) != 2 {
		t.Fatalf("expected 2 top categories, got %+v", rep.TopCategories)
	}
	if rep.TopCategories[0].Category != "Food" || rep.TopCategories[1].Category != "Fuel" {
		t.Fatalf("unexpected top categories: %+v", rep.TopCategories)
	}
}

// TestAssembleMilestonePass проверяет проброс прошлого снимка накоплений
// в правило вех.
func TestAssembleMilestonePass(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	in := sampleInput(now)
	in.PreviousSavings = 900

	rep := Assemble(in, DefaultOptions())
	if !hasAlert(rep.Alerts, "Savings milestone reached: USD 1000 saved!") {
		t.Fatalf("expected milestone alert, got %v", rep.Alerts)
	}
}
