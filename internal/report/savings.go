package report

import (
	"math"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

const (
	SavingsGoalReached = "Goal Reached"
	SavingsAlmostThere = "Almost There"
	SavingsOnTrack     = "On Track"
)

// SavingsProgress — темп движения к цели накоплений.
type SavingsProgress struct {
	HasGoal           bool    `json:"has_goal"`
	Target            float64 `json:"target"`
	Current           float64 `json:"current"`
	ProgressPct       float64 `json:"progress_pct"`
	HasDeadline       bool    `json:"has_deadline"`
	Deadline          string  `json:"deadline,omitempty"`
	DaysLeft          int     `json:"days_left"`
	Remaining         float64 `json:"remaining"`
	RequiredDailyRate float64 `json:"required_daily_rate"`
	Status            string  `json:"status"`
	OverGoal          bool    `json:"over_goal"`
}

// PaceSavingsGoal считает прогресс к цели накоплений. Текущие накопления
// передаются снаружи (совокупный доход минус расходы) и каждый раз
// пересчитываются заново, кэша нет. При нулевой цели прогресс равен 0,
// а не NaN. Превышение цели отмечается флагом OverGoal отдельно от
// ограниченного сотней процента.
func PaceSavingsGoal(goal *models.SavingsGoal, currentSavings float64, now time.Time) SavingsProgress {
	if goal == nil {
		return SavingsProgress{Current: currentSavings, Status: SavingsOnTrack}
	}

	target := ResolveAmount(goal.Amount)

	var pct float64
	if target > 0 {
		pct = math.Min(currentSavings/target*100, 100)
		if pct < 0 {
			pct = 0
		}
	}

	progress := SavingsProgress{
		HasGoal:     true,
		Target:      target,
		Current:     currentSavings,
		ProgressPct: pct,
		Remaining:   target - currentSavings,
		OverGoal:    target > 0 && currentSavings > target,
		Status:      SavingsOnTrack,
	}

	switch {
	case target > 0 && currentSavings >= target:
		progress.Status = SavingsGoalReached
	case target > 0 && currentSavings >= 0.75*target:
		progress.Status = SavingsAlmostThere
	}

	if goal.Deadline != nil && !goal.Deadline.IsZero() {
		progress.HasDeadline = true
		progress.Deadline = goal.Deadline.Format("2006-01-02")

		daysLeft := int(math.Ceil(goal.Deadline.Sub(now).Hours() / 24))
		if daysLeft < 0 {
			daysLeft = 0
		}
		progress.DaysLeft = daysLeft

		if progress.Remaining > 0 && daysLeft > 0 {
			progress.RequiredDailyRate = progress.Remaining / float64(daysLeft)
		}
	}

	return progress
}
