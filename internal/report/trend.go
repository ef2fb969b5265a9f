package report

import (
	"math"
	"sort"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

type MonthPoint struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// TrendPoint — точка объединенного ряда расходов и доходов за месяц.
type TrendPoint struct {
	Month    string  `json:"month"`
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
}

type datedAmount struct {
	date   *time.Time
	amount float64
}

// MonthlyExpenseSeries строит месячный ряд сумм расходов.
func MonthlyExpenseSeries(expenses []models.Expense) []MonthPoint {
	items := make([]datedAmount, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, datedAmount{date: e.Date, amount: ExpenseAmount(e)})
	}
	return buildMonthlySeries(items)
}

// MonthlyIncomeSeries строит месячный ряд сумм доходов.
func MonthlyIncomeSeries(incomes []models.Income) []MonthPoint {
	items := make([]datedAmount, 0, len(incomes))
	for _, inc := range incomes {
		items = append(items, datedAmount{date: inc.Date, amount: ResolveAmount(inc.Amount)})
	}
	return buildMonthlySeries(items)
}

// buildMonthlySeries агрегирует записи по ключам месяца и сортирует по
// возрастанию ключа. Записи без даты и с непригодной суммой пропускаются;
// дубликатов ключей в результате нет.
func buildMonthlySeries(items []datedAmount) []MonthPoint {
	totals := make(map[string]float64)
	for _, it := range items {
		if it.date == nil || it.date.IsZero() {
			continue
		}
		if math.IsNaN(it.amount) || math.IsInf(it.amount, 0) {
			continue
		}
		totals[MonthKey(*it.date)] += it.amount
	}

	series := make([]MonthPoint, 0, len(totals))
	for key, total := range totals {
		series = append(series, MonthPoint{Month: key, Total: total})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}

// MergeMonthlySeries объединяет ряды расходов и доходов по объединению
// ключей месяцев: месяц с доходом без расходов все равно присутствует
// с нулевым расходом, пропусков в точках не бывает.
func MergeMonthlySeries(expenses, income []MonthPoint) []TrendPoint {
	keys := make(map[string]struct{}, len(expenses)+len(income))
	for _, p := range expenses {
		keys[p.Month] = struct{}{}
	}
	for _, p := range income {
		keys[p.Month] = struct{}{}
	}

	months := make([]string, 0, len(keys))
	for key := range keys {
		months = append(months, key)
	}
	sort.Strings(months)

	lookup := func(series []MonthPoint, month string) float64 {
		for _, p := range series {
			if p.Month == month {
				return p.Total
			}
		}
		return 0
	}

	merged := make([]TrendPoint, 0, len(months))
	for _, month := range months {
		merged = append(merged, TrendPoint{
			Month:    month,
			Expenses: lookup(expenses, month),
			Income:   lookup(income, month),
		})
	}
	return merged
}
