package report

import (
	"strings"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

// KPISet — ключевые показатели для карточек дашборда и шапки отчета.
type KPISet struct {
	TotalIncome      float64  `json:"total_income"`
	TotalExpenses    float64  `json:"total_expenses"`
	Net              float64  `json:"net"`
	AvgDailySpend    float64  `json:"avg_daily_spend"`
	OverspentCount   int      `json:"overspent_count"`
	TopCategory      string   `json:"top_category"`
	MonthlyRecurring float64  `json:"monthly_recurring"`
	SavingsRatePct   *float64 `json:"savings_rate_pct,omitempty"`
}

// ComputeKPIs агрегирует итоговые показатели по всем коллекциям.
// Средний дневной расход берется на наблюдаемом интервале дат расходов;
// без единой даты интервал считается равным 30 дням.
func ComputeKPIs(expenses []models.Expense, incomes []models.Income, budgets []models.Budget, recurring []models.RecurringItem) KPISet {
	var totalExpenses float64
	for _, e := range expenses {
		totalExpenses += ExpenseAmount(e)
	}

	var totalIncome float64
	for _, inc := range incomes {
		totalIncome += ResolveAmount(inc.Amount)
	}

	kpi := KPISet{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		Net:           totalIncome - totalExpenses,
	}

	days := observedDaySpan(expenses)
	kpi.AvgDailySpend = totalExpenses / float64(days)

	byCategory := GroupByCategory(expenses)
	for _, b := range budgets {
		if byCategory.Get(b.Category) > ResolveAmount(b.Amount) {
			kpi.OverspentCount++
		}
	}

	if top := byCategory.Top(1); len(top) > 0 && top[0].Total > 0 {
		kpi.TopCategory = top[0].Category
	}

	for _, r := range recurring {
		kpi.MonthlyRecurring += ResolveAmount(r.Amount) * MonthlyFactor(r.Frequency)
	}

	if totalIncome > 0 {
		rate := (totalIncome - totalExpenses) / totalIncome * 100
		kpi.SavingsRatePct = &rate
	}

	return kpi
}

// observedDaySpan возвращает количество дней между первой и последней
// датой расходов, минимум 1; без дат — 30.
func observedDaySpan(expenses []models.Expense) int {
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
		return 30
	}

	days := DaysBetween(*first, *last)
	if days < 1 {
		days = 1
	}
	return days
}

// MonthlyFactor переводит свободный текст периодичности в оценку числа
// срабатываний за месяц. Пустая периодичность дает 0, нераспознанная
// считается ежемесячной.
func MonthlyFactor(frequency string) float64 {
	freq := strings.ToLower(strings.TrimSpace(frequency))
	switch {
	case freq == "":
		return 0
	case strings.Contains(freq, "bi") && strings.Contains(freq, "week"):
		return 2.165
	case strings.Contains(freq, "week"):
		return 4.33
	case strings.Contains(freq, "day"):
		return 30
	case strings.Contains(freq, "quarter"):
		return 1.0 / 3
	case strings.Contains(freq, "year"):
		return 1.0 / 12
	default:
		return 1
	}
}

// DebtInterestRow — оценка месячных процентов по долгу с известной ставкой.
type DebtInterestRow struct {
	Title           string  `json:"title"`
	Amount          float64 `json:"amount"`
	RatePct         float64 `json:"rate_pct"`
	MonthlyInterest float64 `json:"monthly_interest"`
}

// DebtInterestProjection считает примерные проценты в месяц по каждому
// долгу с указанной ставкой: amount * rate / 100 / 12.
func DebtInterestProjection(debts []models.Debt) []DebtInterestRow {
	rows := make([]DebtInterestRow, 0)
	for _, d := range debts {
		if d.InterestRate == nil {
			continue
		}
		amount := ResolveAmount(d.Amount)
		rate := *d.InterestRate
		rows = append(rows, DebtInterestRow{
			Title:           d.Title,
			Amount:          amount,
			RatePct:         rate,
			MonthlyInterest: amount * (rate / 100) / 12,
		})
	}
	return rows
}

// ExpenseSummary — суммы расходов по привычным интервалам дашборда.
type ExpenseSummary struct {
	Today     float64 `json:"today"`
	Yesterday float64 `json:"yesterday"`
	Week      float64 `json:"week"`
	Month     float64 `json:"month"`
	LastMonth float64 `json:"last_month"`
}

// SummarizeExpenses считает корзины "сегодня/вчера/неделя/месяц/прошлый
// месяц" с точностью до локального дня. Неделя начинается с понедельника.
func SummarizeExpenses(expenses []models.Expense, now time.Time) ExpenseSummary {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	weekday := int(now.Weekday())
	offset := weekday - 1
	if weekday == 0 {
		offset = 6
	}
	weekStart := today.AddDate(0, 0, -offset)

	monthStart, _ := MonthRange(now)
	lastMonthStart, lastMonthEnd := MonthRange(monthStart.AddDate(0, 0, -1))

	sum := func(from, to time.Time) float64 {
		return SumExpenses(expenses, SumFilter{From: &from, To: &to})
	}

	return ExpenseSummary{
		Today:     sum(today, today),
		Yesterday: sum(yesterday, yesterday),
		Week:      sum(weekStart, today),
		Month:     sum(monthStart, today),
		LastMonth: sum(lastMonthStart, lastMonthEnd),
	}
}
