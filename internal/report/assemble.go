package report

import (
	"sort"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

// Options — настройки сборки отчета.
type Options struct {
	Rules              RuleConfig
	TopExpensesLimit   int
	TopCategoriesLimit int
	FallbackCurrency   string
}

// DefaultOptions возвращает настройки сборки по умолчанию.
func DefaultOptions() Options {
	return Options{
		Rules:              DefaultRuleConfig(),
		TopExpensesLimit:   5,
		TopCategoriesLimit: 5,
		FallbackCurrency:   "USD",
	}
}

// Input — один согласованный снимок коллекций пользователя плюс
// инъецированное "сейчас". Сборщик не читает часы и не хранит состояние
// между вызовами: одинаковый ввод дает побайтно одинаковый отчет.
type Input struct {
	Expenses        []models.Expense
	Budgets         []models.Budget
	Incomes         []models.Income
	Debts           []models.Debt
	Recurring       []models.RecurringItem
	Goals           []models.SavingsGoal
	PreviousSavings float64
	Now             time.Time
}

type DataSummary struct {
	Expenses   int `json:"expenses"`
	Budgets    int `json:"budgets"`
	Incomes    int `json:"incomes"`
	Debts      int `json:"debts"`
	Recurring  int `json:"recurring"`
	Categories int `json:"categories"`
	Currencies int `json:"currencies"`
}

// CategoryOverviewRow — строка обзора по объединению категорий бюджетов
// и категорий с расходами.
type CategoryOverviewRow struct {
	Category   string       `json:"category"`
	Currency   string       `json:"currency"`
	Budget     float64      `json:"budget"`
	Spent      float64      `json:"spent"`
	Remaining  float64      `json:"remaining"`
	PercentRaw float64      `json:"percent_raw"`
	Status     BudgetStatus `json:"status"`
}

// Report — единая структура, которую презентеры дашборда, экспорта и
// уведомлений отображают без дополнительной арифметики.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	PeriodFrom  string    `json:"period_from,omitempty"`
	PeriodTo    string    `json:"period_to,omitempty"`
	Currency    string    `json:"currency"`

	KPIs             KPISet                `json:"kpis"`
	DataSummary      DataSummary           `json:"data_summary"`
	CategoryOverview []CategoryOverviewRow `json:"category_overview"`
	Forecast         Forecast              `json:"forecast"`
	ExpenseSummary   ExpenseSummary        `json:"expense_summary"`
	BudgetProgress   []BudgetProgress      `json:"budget_progress"`
	TopExpenses      []models.Expense      `json:"top_expenses"`
	TopCategories    CategoryTotals        `json:"top_categories"`
	MonthlyTrends    []TrendPoint          `json:"monthly_trends"`
	DebtInterest     []DebtInterestRow     `json:"debt_interest"`
	Savings          SavingsProgress       `json:"savings"`
	Alerts           []string              `json:"alerts"`

	Expenses  []models.Expense       `json:"expenses"`
	Budgets   []models.Budget        `json:"budgets"`
	Incomes   []models.Income        `json:"incomes"`
	Debts     []models.Debt          `json:"debts"`
	Recurring []models.RecurringItem `json:"recurring"`
}

// Assemble строит отчет из снимка за один проход по фиксированному
// порядку: KPI, сводка данных, обзор категорий, прогноз, интервальные
// суммы, прогресс бюджетов, топ расходов, тренды, проценты по долгам,
// накопления, уведомления. Любой вход, даже пустой или испорченный,
// дает отчет, а не ошибку: дашборд не должен падать из-за данных.
func Assemble(in Input, opts Options) Report {
	currency := PrimaryCurrency(in.Budgets, in.Expenses, opts.FallbackCurrency)

	rep := Report{
		GeneratedAt: in.Now,
		Currency:    currency,
		Expenses:    in.Expenses,
		Budgets:     in.Budgets,
		Incomes:     in.Incomes,
		Debts:       in.Debts,
		Recurring:   in.Recurring,
	}
	rep.PeriodFrom, rep.PeriodTo = observedPeriod(in.Expenses)

	rep.KPIs = ComputeKPIs(in.Expenses, in.Incomes, in.Budgets, in.Recurring)
	rep.DataSummary = summarizeData(in)
	rep.CategoryOverview = categoryOverview(in.Budgets, in.Expenses, currency)
	rep.Forecast = ForecastMonthEnd(in.Expenses, in.Budgets, in.Now)
	rep.ExpenseSummary = SummarizeExpenses(in.Expenses, in.Now)
	rep.BudgetProgress = BudgetProgressAll(in.Budgets, in.Expenses, currency)
	rep.TopExpenses = TopExpenses(in.Expenses, opts.TopExpensesLimit)
	rep.TopCategories = GroupByCategory(in.Expenses).Top(opts.TopCategoriesLimit)
	rep.MonthlyTrends = MergeMonthlySeries(MonthlyExpenseSeries(in.Expenses), MonthlyIncomeSeries(in.Incomes))
	rep.DebtInterest = DebtInterestProjection(in.Debts)

	// Накопления к цели: доход минус расход, всегда свежий расчет.
	currentSavings := rep.KPIs.TotalIncome - rep.KPIs.TotalExpenses
	rep.Savings = PaceSavingsGoal(firstGoal(in.Goals), currentSavings, in.Now)

	var totalDebts float64
	for _, d := range in.Debts {
		totalDebts += ResolveAmount(d.Amount)
	}

	rep.Alerts = EvaluateAlerts(AlertInput{
		Progress:        rep.BudgetProgress,
		Expenses:        in.Expenses,
		Debts:           in.Debts,
		Recurring:       in.Recurring,
		TotalIncome:     rep.KPIs.TotalIncome,
		TotalExpenses:   rep.KPIs.TotalExpenses,
		TotalDebts:      totalDebts,
		TotalBudget:     rep.Forecast.TotalBudget,
		MonthSpent:      rep.ExpenseSummary.Month,
		PreviousSavings: in.PreviousSavings,
		CurrentSavings:  currentSavings - totalDebts,
		Currency:        currency,
		Now:             in.Now,
	}, opts.Rules)

	return rep
}

// TopExpenses возвращает n самых крупных расходов по убыванию разрешенной
// суммы; при равенстве сохраняется исходный порядок коллекции.
func TopExpenses(expenses []models.Expense, n int) []models.Expense {
	sorted := make([]models.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ExpenseAmount(sorted[i]) > ExpenseAmount(sorted[j])
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func summarizeData(in Input) DataSummary {
	categories := make(map[string]struct{})
	for _, e := range in.Expenses {
		if key := normalizeCategory(e.Category); key != "" {
			categories[key] = struct{}{}
		}
	}

	currencies := make(map[string]struct{})
	for _, e := range in.Expenses {
		if e.Currency != "" {
			currencies[e.Currency] = struct{}{}
		}
	}
	for _, b := range in.Budgets {
		if b.Currency != "" {
			currencies[b.Currency] = struct{}{}
		}
	}
	for _, inc := range in.Incomes {
		if inc.Currency != "" {
			currencies[inc.Currency] = struct{}{}
		}
	}

	return DataSummary{
		Expenses:   len(in.Expenses),
		Budgets:    len(in.Budgets),
		Incomes:    len(in.Incomes),
		Debts:      len(in.Debts),
		Recurring:  len(in.Recurring),
		Categories: len(categories),
		Currencies: len(currencies),
	}
}

// categoryOverview строит обзор по объединению категорий с бюджетом и
// категорий с расходами, отсортированному по алфавиту. Remaining здесь
// со знаком: презентеру обзора нужен и перерасход.
func categoryOverview(budgets []models.Budget, expenses []models.Expense, currency string) []CategoryOverviewRow {
	spentByCat := GroupByCategory(expenses)

	seen := make(map[string]struct{})
	names := make([]string, 0, len(spentByCat)+len(budgets))
	for _, t := range spentByCat {
		if _, ok := seen[normalizeCategory(t.Category)]; !ok {
			seen[normalizeCategory(t.Category)] = struct{}{}
			names = append(names, t.Category)
		}
	}
	for _, b := range budgets {
		key := normalizeCategory(b.Category)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			names = append(names, b.Category)
		}
	}
	sort.Strings(names)

	rows := make([]CategoryOverviewRow, 0, len(names))
	for _, name := range names {
		row := CategoryOverviewRow{
			Category: name,
			Currency: currency,
			Spent:    spentByCat.Get(name),
		}

		// Дубликаты категорий терпим: берется первый бюджет по порядку коллекции.
		for _, b := range budgets {
			if normalizeCategory(b.Category) == normalizeCategory(name) {
				row.Budget = ResolveAmount(b.Amount)
				row.Currency = ResolveCurrency(b.Currency, currency)
				break
			}
		}

		row.Remaining = row.Budget - row.Spent
		if row.Budget > 0 {
			row.PercentRaw = row.Spent / row.Budget * 100
		}
		row.Status = classifyUsage(row.PercentRaw)
		rows = append(rows, row)
	}
	return rows
}

// firstGoal выбирает "ту самую" цель: активной считается первая, но
// ноль и несколько целей тоже допустимы.
func firstGoal(goals []models.SavingsGoal) *models.SavingsGoal {
	if len(goals) == 0 {
		return nil
	}
	return &goals[0]
}

func observedPeriod(expenses []models.Expense) (string, string) {
	var first, last *time.Time
	for _, e := range expenses {
		if e.Date == nil || e.Date.IsZero() {
			continue
		}
		if first == nil || e.Date.Before(*first) {
			first = e.Date
		}
		if last == nil || e.Date.After(*last) {
			last = e.Date
		}
	}

	if first == nil {
		return "", ""
	}
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}
