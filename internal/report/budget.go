package report

import (
	"github.com/google/uuid"

	"example.com/expense-tracker/backend/internal/models"
)

type BudgetStatus string

const (
	StatusOK        BudgetStatus = "OK"
	StatusHalfUsed  BudgetStatus = "Half-used"
	StatusHigh      BudgetStatus = "High"
	StatusCritical  BudgetStatus = "Critical"
	StatusOverspent BudgetStatus = "Overspent"
)

// BudgetProgress — прогресс одного бюджета после привязки расходов.
type BudgetProgress struct {
	BudgetID    uuid.UUID    `json:"budget_id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Currency    string       `json:"currency"`
	Budget      float64      `json:"budget"`
	Spent       float64      `json:"spent"`
	Remaining   float64      `json:"remaining"`
	Deficit     float64      `json:"deficit"`
	PercentUsed float64      `json:"percent_used"`
	PercentRaw  float64      `json:"percent_raw"`
	Status      BudgetStatus `json:"status"`
}

// BudgetProgressAll считает прогресс каждого бюджета. Расход привязывается
// к бюджету по явной ссылке budgetId, а при её отсутствии — по совпадению
// категории без учета регистра: форма позволяет создавать расходы и так,
// и так. Расход без совпадения не попадает ни в один бюджет и это не ошибка.
func BudgetProgressAll(budgets []models.Budget, expenses []models.Expense, fallbackCurrency string) []BudgetProgress {
	progress := make([]BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		spent := spentForBudget(b, expenses)
		amount := ResolveAmount(b.Amount)

		var pctRaw float64
		if amount > 0 {
			pctRaw = spent / amount * 100
		}

		pct := pctRaw
		if pct > 100 {
			pct = 100
		}

		remaining := amount - spent
		deficit := remaining
		if remaining < 0 {
			remaining = 0
		}

		progress = append(progress, BudgetProgress{
			BudgetID:    b.ID,
			Name:        b.Name,
			Category:    b.Category,
			Currency:    ResolveCurrency(b.Currency, fallbackCurrency),
			Budget:      amount,
			Spent:       spent,
			Remaining:   remaining,
			Deficit:     deficit,
			PercentUsed: pct,
			PercentRaw:  pctRaw,
			Status:      classifyUsage(pctRaw),
		})
	}
	return progress
}

// classifyUsage сопоставляет неограниченный процент использования со
// статусом; при совпадении порогов побеждает старший.
func classifyUsage(pct float64) BudgetStatus {
	switch {
	case pct >= 100:
		return StatusOverspent
	case pct >= 90:
		return StatusCritical
	case pct >= 75:
		return StatusHigh
	case pct >= 50:
		return StatusHalfUsed
	default:
		return StatusOK
	}
}

func spentForBudget(b models.Budget, expenses []models.Expense) float64 {
	category := normalizeCategory(b.Category)

	var spent float64
	for _, e := range expenses {
		if e.BudgetID != nil {
			if *e.BudgetID == b.ID {
				spent += ExpenseAmount(e)
			}
			continue
		}
		if category != "" && normalizeCategory(e.Category) == category {
			spent += ExpenseAmount(e)
		}
	}
	return spent
}
