package report

import (
	"fmt"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

// RuleConfig — пороги правил уведомлений. Все значения приходят из
// конфигурации, тела правил порогов не содержат.
type RuleConfig struct {
	TierHalf      float64
	TierWarning   float64
	TierCritical  float64
	TierOverspent float64
	TierGoodUnder float64

	LargeExpenseThreshold float64
	HighInterestRate      float64
	DueSoonWindow         time.Duration
	SavingsMilestones     []float64
}

// DefaultRuleConfig возвращает пороги по умолчанию.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		TierHalf:              50,
		TierWarning:           75,
		TierCritical:          90,
		TierOverspent:         100,
		TierGoodUnder:         25,
		LargeExpenseThreshold: 5000,
		HighInterestRate:      15,
		DueSoonWindow:         3 * 24 * time.Hour,
		SavingsMilestones:     []float64{1000, 5000, 10000, 15000, 25000, 50000, 100000},
	}
}

// AlertInput — агрегированное состояние, по которому оцениваются правила.
// PreviousSavings — последнее известное накопление из прошлого снимка:
// пересечение вех определяется сравнением двух накопленных значений,
// а не дельтой одного расхода.
type AlertInput struct {
	Progress        []BudgetProgress
	Expenses        []models.Expense
	Debts           []models.Debt
	Recurring       []models.RecurringItem
	TotalIncome     float64
	TotalExpenses   float64
	TotalDebts      float64
	TotalBudget     float64
	MonthSpent      float64
	PreviousSavings float64
	CurrentSavings  float64
	Currency        string
	Now             time.Time
}

// EvaluateAlerts — чистая функция: отображает состояние в упорядоченный
// список советов. Каждое правило оценивается независимо, выводятся все
// сработавшие; только в ярусах бюджета побеждает единственное старшее
// сообщение, чтобы один бюджет не давал каскад предупреждений.
func EvaluateAlerts(in AlertInput, cfg RuleConfig) []string {
	alerts := make([]string, 0)

	alerts = append(alerts, budgetTierAlerts(in.Progress, cfg)...)

	if in.MonthSpent > in.TotalBudget && in.TotalBudget > 0 {
		alerts = append(alerts, "This month's expenses exceed total budget!")
	}

	alerts = append(alerts, largeExpenseAlerts(in.Expenses, in.Currency, cfg)...)

	if deficit := in.TotalIncome - in.TotalExpenses - in.TotalDebts; deficit < 0 {
		alerts = append(alerts, fmt.Sprintf(
			"Negative savings: expenses exceed income by %s %.2f", in.Currency, -deficit))
	}

	alerts = append(alerts, milestoneAlerts(in.PreviousSavings, in.CurrentSavings, in.Currency, cfg)...)
	alerts = append(alerts, highInterestAlerts(in.Debts, in.Currency, cfg)...)
	alerts = append(alerts, dueSoonAlerts(in.Recurring, in.Debts, in.Currency, in.Now, cfg)...)

	if len(in.Expenses) == 0 {
		alerts = append(alerts, "Add your first expense to start tracking!")
	}

	return alerts
}

// budgetTierAlerts выдает по одному сообщению на бюджет — только самый
// высокий достигнутый ярус, а не каждый пересеченный.
func budgetTierAlerts(progress []BudgetProgress, cfg RuleConfig) []string {
	alerts := make([]string, 0)
	for _, p := range progress {
		switch {
		case p.PercentRaw >= cfg.TierOverspent:
			alerts = append(alerts, fmt.Sprintf(
				"Overspent in %q -> Budget: %s %.2f, Spent: %s %.2f",
				p.Category, p.Currency, p.Budget, p.Currency, p.Spent))
		case p.PercentRaw >= cfg.TierCritical:
			alerts = append(alerts, fmt.Sprintf("Nearly overspent: %q budget %.0f%%+ used", p.Category, cfg.TierCritical))
		case p.PercentRaw >= cfg.TierWarning:
			alerts = append(alerts, fmt.Sprintf("Warning: %q budget %.0f%% used", p.Category, cfg.TierWarning))
		case p.PercentRaw >= cfg.TierHalf:
			alerts = append(alerts, fmt.Sprintf("Half of %q budget is used", p.Category))
		case p.Spent > 0 && p.PercentRaw < cfg.TierGoodUnder:
			alerts = append(alerts, fmt.Sprintf("Good! %q spending is under %.0f%%", p.Category, cfg.TierGoodUnder))
		}
	}
	return alerts
}

func largeExpenseAlerts(expenses []models.Expense, currency string, cfg RuleConfig) []string {
	if cfg.LargeExpenseThreshold <= 0 {
		return nil
	}

	alerts := make([]string, 0)
	for _, e := range expenses {
		amount := ExpenseAmount(e)
		if amount >= cfg.LargeExpenseThreshold {
			alerts = append(alerts, fmt.Sprintf(
				"Large expense: %s %.2f spent on %q (threshold: %s %.0f)",
				ResolveCurrency(e.Currency, currency), amount, e.Title, currency, cfg.LargeExpenseThreshold))
		}
	}
	return alerts
}

// milestoneAlerts сообщает о вехах, пересеченных снизу вверх между двумя
// снимками накоплений. Ранее пройденные вехи не повторяются, потому что
// previous уже выше них.
func milestoneAlerts(previous, current float64, currency string, cfg RuleConfig) []string {
	alerts := make([]string, 0)
	for _, milestone := range cfg.SavingsMilestones {
		if previous < milestone && milestone <= current {
			alerts = append(alerts, fmt.Sprintf("Savings milestone reached: %s %.0f saved!", currency, milestone))
		}
	}
	return alerts
}

func highInterestAlerts(debts []models.Debt, currency string, cfg RuleConfig) []string {
	alerts := make([]string, 0)
	for _, d := range debts {
		if d.InterestRate == nil {
			continue
		}
		if *d.InterestRate >= cfg.HighInterestRate {
			alerts = append(alerts, fmt.Sprintf(
				"High interest debt: %q (%s %.2f) at %.1f%% interest rate",
				d.Title, currency, ResolveAmount(d.Remaining, d.Amount), *d.InterestRate))
		}
	}
	return alerts
}

// dueSoonAlerts напоминает о регулярных платежах и неоплаченных долгах,
// срок которых попадает в окно ожидания; просроченные тоже попадают.
func dueSoonAlerts(recurring []models.RecurringItem, debts []models.Debt, currency string, now time.Time, cfg RuleConfig) []string {
	alerts := make([]string, 0)
	for _, r := range recurring {
		if r.NextDue == nil || r.NextDue.IsZero() {
			continue
		}
		if r.NextDue.Sub(now) < cfg.DueSoonWindow {
			alerts = append(alerts, fmt.Sprintf(
				"Reminder: %q of %s %.2f is due on %s",
				r.Title, ResolveCurrency(r.Currency, currency), r.Amount, r.NextDue.Format("2006-01-02")))
		}
	}
	for _, d := range debts {
		if d.Paid || d.DueDate == nil || d.DueDate.IsZero() {
			continue
		}
		if d.DueDate.Sub(now) < cfg.DueSoonWindow {
			alerts = append(alerts, fmt.Sprintf(
				"Debt %q of %s %.2f is due on %s",
				d.Title, currency, ResolveAmount(d.Remaining, d.Amount), d.DueDate.Format("2006-01-02")))
		}
	}
	return alerts
}
