package report

import (
	"testing"
	"time"
)

// TestLocalDayKeyInvalid проверяет сентинел для пустой даты.
func TestLocalDayKeyInvalid(t *testing.T) {
	if got := LocalDayKey(nil); got != UnknownDay {
		t.Fatalf("expected UnknownDay for nil, got %d", got)
	}

	zero := time.Time{}
	if got := LocalDayKey(&zero); got != UnknownDay {
		t.Fatalf("expected UnknownDay for zero time, got %d", got)
	}
}

// TestLocalDayKeyIgnoresTimeOfDay проверяет нормализацию к полуночи.
func TestLocalDayKeyIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 15, 8, 30, 0, 0, time.Local)
	evening := time.Date(2024, 3, 15, 23, 59, 59, 0, time.Local)

	if LocalDayKey(&morning) != LocalDayKey(&evening) {
		t.Fatal("expected same day key regardless of time of day")
	}
}

// TestMonthKey проверяет формат ключа месяца.
func TestMonthKey(t *testing.T) {
	d := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	if got := MonthKey(d); got != "2024-03" {
		t.Fatalf("expected 2024-03, got %s", got)
	}
}

// TestMonthRange проверяет границы месяца, включая февраль високосного года.
func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.Date(2024, 2, 10, 15, 0, 0, 0, time.Local))

	if start.Day() != 1 || start.Month() != time.February {
		t.Fatalf("unexpected start: %v", start)
	}
	if end.Day() != 29 || end.Month() != time.February {
		t.Fatalf("unexpected end: %v", end)
	}
}

// TestDaysBetween проверяет округление вверх и знак результата.
func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	b := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)

	if got := DaysBetween(a, b); got != 14 {
		t.Fatalf("expected 14, got %d", got)
	}

	if got := DaysBetween(a, a); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}

	if got := DaysBetween(b, a); got >= 0 {
		t.Fatalf("expected negative for reversed order, got %d", got)
	}

	// Неполный день округляется вверх.
	c := a.Add(6 * time.Hour)
	if got := DaysBetween(a, c); got != 1 {
		t.Fatalf("expected 1 for partial day, got %d", got)
	}
}
