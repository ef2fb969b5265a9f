package report

import (
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

const (
	RiskOK        = "OK"
	RiskTight     = "Tight"
	RiskOverspend = "Overspend"
)

// Forecast — проекция расходов до конца текущего месяца по темпу с его начала.
type Forecast struct {
	Month              string  `json:"month"`
	DaysElapsed        int     `json:"days_elapsed"`
	DaysTotal          int     `json:"days_total"`
	DaysLeft           int     `json:"days_left"`
	SpentSoFar         float64 `json:"spent_so_far"`
	AvgDaily           float64 `json:"avg_daily"`
	MonthEnd           float64 `json:"month_end"`
	TotalBudget        float64 `json:"total_budget"`
	ProjectedRemaining float64 `json:"projected_remaining"`
	Risk               string  `json:"risk"`
}

// ForecastMonthEnd экстраполирует расходы месяца по среднему дневному темпу.
// Ограничения max(1, daysElapsed) и max(totalBudget, 1) обязательны: без них
// первый день месяца и нулевой бюджет приводят к делению на ноль.
func ForecastMonthEnd(expenses []models.Expense, budgets []models.Budget, now time.Time) Forecast {
	start, end := MonthRange(now)

	spentSoFar := SumExpenses(expenses, SumFilter{From: &start, To: &end})

	daysElapsed := DaysBetween(start, now)
	if daysElapsed < 1 {
		daysElapsed = 1
	}

	daysTotal := DaysBetween(start, end) + 1
	daysLeft := daysTotal - daysElapsed
	if daysLeft < 0 {
		daysLeft = 0
	}

	avgDaily := spentSoFar / float64(daysElapsed)
	monthEnd := spentSoFar + avgDaily*float64(daysLeft)

	var totalBudget float64
	for _, b := range budgets {
		totalBudget += ResolveAmount(b.Amount)
	}
	projectedRemaining := totalBudget - monthEnd

	risk := RiskOK
	budgetDivisor := totalBudget
	if budgetDivisor < 1 {
		budgetDivisor = 1
	}
	switch {
	case projectedRemaining < 0:
		risk = RiskOverspend
	case projectedRemaining/budgetDivisor < 0.10:
		risk = RiskTight
	}

	return Forecast{
		Month:              MonthKey(now),
		DaysElapsed:        daysElapsed,
		DaysTotal:          daysTotal,
		DaysLeft:           daysLeft,
		SpentSoFar:         spentSoFar,
		AvgDaily:           avgDaily,
		MonthEnd:           monthEnd,
		TotalBudget:        totalBudget,
		ProjectedRemaining: projectedRemaining,
		Risk:               risk,
	}
}
