package report

import (
	"testing"
	"time"

	"example.com/expense-tracker/backend/internal/models"
)

// TestPaceSavingsGoalDailyRate проверяет расчет требуемого дневного темпа.
func TestPaceSavingsGoalDailyRate(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	deadline := now.AddDate(0, 0, 10)
	goal := &models.SavingsGoal{Amount: 10000, Deadline: &deadline}

	p := PaceSavingsGoal(goal, 4000, now)
	if p.ProgressPct != 40 {
		t.Fatalf("expected 40%%, got %v", p.ProgressPct)
	}
	if p.DaysLeft != 10 {
		t.Fatalf("expected 10 days left, got %d", p.DaysLeft)
	}
	if p.RequiredDailyRate != 600 {
		t.Fatalf("expected rate 600, got %v", p.RequiredDailyRate)
	}
	if p.Status != SavingsOnTrack {
		t.Fatalf("expected On Track, got %v", p.Status)
	}
}

// TestPaceSavingsGoalZeroTarget проверяет нулевую цель: прогресс 0, не NaN.
func TestPaceSavingsGoalZeroTarget(t *testing.T) {
	now := time.Now()
	goal := &models.SavingsGoal{Amount: 0}

	p := PaceSavingsGoal(goal, 500, now)
	if p.ProgressPct != 0 {
		t.Fatalf("expected 0%%, got %v", p.ProgressPct)
	}
	if p.OverGoal {
		t.Fatalf("zero target must not flag over-goal")
	}
}

// TestPaceSavingsGoalStatuses проверяет статусы Almost There и Goal Reached
// вместе с флагом превышения цели.
func TestPaceSavingsGoalStatuses(t *testing.T) {
	now := time.Now()
	goal := &models.SavingsGoal{Amount: 1000}

	almost := PaceSavingsGoal(goal, 800, now)
	if almost.Status != SavingsAlmostThere {
		t.Fatalf("expected Almost There, got %v", almost.Status)
	}

	reached := PaceSavingsGoal(goal, 1000, now)
	if reached.Status != SavingsGoalReached || reached.OverGoal {
		t.Fatalf("unexpected reached state: %+v", reached)
	}

	over := PaceSavingsGoal(goal, 1500, now)
	if over.Status != SavingsGoalReached || !over.OverGoal {
		t.Fatalf("unexpected over-goal state: %+v", over)
	}
	if over.ProgressPct != 100 {
		t.Fatalf("expected clamped 100%%, got %v", over.ProgressPct)
	}
}

// TestPaceSavingsGoalPastDeadline проверяет просроченный дедлайн: дни не
// уходят в минус, темп не считается.
func TestPaceSavingsGoalPastDeadline(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	deadline := now.AddDate(0, 0, -5)
	goal := &models.SavingsGoal{Amount: 10000, Deadline: &deadline}

	p := PaceSavingsGoal(goal, 4000, now)
	if p.DaysLeft != 0 {
		t.Fatalf("expected 0 days left, got %d", p.DaysLeft)
	}
	if p.RequiredDailyRate != 0 {
		t.Fatalf("expected no rate, got %v", p.RequiredDailyRate)
	}
}

// TestPaceSavingsGoalNil проверяет отсутствие цели.
func TestPaceSavingsGoalNil(t *testing.T) {
	p := PaceSavingsGoal(nil, 250, time.Now())
	if p.HasGoal {
		t.Fatalf("expected no goal")
	}
	if p.Current != 250 {
		t.Fatalf("expected current 250, got %v", p.Current)
	}
}
