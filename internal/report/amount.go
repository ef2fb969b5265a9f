package report

import (
	"math"

	"example.com/expense-tracker/backend/internal/models"
)

// ResolveAmount возвращает первое пригодное значение из кандидатов:
// не NaN, не бесконечность и не ноль. Если такого нет — 0.
func ResolveAmount(candidates ...float64) float64 {
	for _, v := range candidates {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v != 0 {
			return v
		}
	}
	return 0
}

// ResolveCurrency возвращает явную валюту записи, а при её отсутствии — запасную.
func ResolveCurrency(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	return fallback
}

// ExpenseAmount выбирает сумму расхода: устаревшее поле expenseAmount
// имеет приоритет над каноническим amount.
func ExpenseAmount(e models.Expense) float64 {
	return ResolveAmount(e.ExpenseAmount, e.Amount)
}

// PrimaryCurrency выбирает основную валюту отчета: первая непустая
// валюта среди бюджетов, затем среди расходов, иначе fallback.
// Конвертация не выполняется, валюта нужна только для подписи итогов.
func PrimaryCurrency(budgets []models.Budget, expenses []models.Expense, fallback string) string {
	for _, b := range budgets {
		if b.Currency != "" {
			return b.Currency
		}
	}
	for _, e := range expenses {
		if e.Currency != "" {
			return e.Currency
		}
	}
	return fallback
}
