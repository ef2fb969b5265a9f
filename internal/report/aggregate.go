package report

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/expense-tracker/backend/internal/models"
)

// UncategorizedLabel — корзина для расходов без категории.
const UncategorizedLabel = "Uncategorized"

// SumFilter задает необязательные фильтры суммирования.
// Пустая категория и nil-границы означают отсутствие фильтра.
type SumFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
	BudgetID *uuid.UUID
}

// SumExpenses суммирует разрешенные суммы расходов с учетом фильтров.
// Сравнение категорий нечувствительно к регистру и пробелам, потому что
// категории вводятся пользователем и нигде больше не нормализуются.
// Диапазон дат включает обе границы с точностью до локального дня;
// записи без даты в датированные суммы не попадают.
func SumExpenses(expenses []models.Expense, filter SumFilter) float64 {
	wantCategory := normalizeCategory(filter.Category)

	var total float64
	for _, e := range expenses {
		if wantCategory != "" && normalizeCategory(e.Category) != wantCategory {
			continue
		}
		if filter.BudgetID != nil && (e.BudgetID == nil || *e.BudgetID != *filter.BudgetID) {
			continue
		}
		if filter.From != nil && filter.To != nil {
			if !withinDayRange(LocalDayKey(e.Date), *filter.From, *filter.To) {
				continue
			}
		}
		total += ExpenseAmount(e)
	}
	return total
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type CategoryTotals []CategoryTotal

// GroupByCategory группирует расходы по категориям без учета регистра
// и пробелов, как и все сравнения категорий. Имя корзины берется из
// первого появления, порядок корзин — по первому появлению;
// ранжирование потребители делают сами.
func GroupByCategory(expenses []models.Expense) CategoryTotals {
	index := make(map[string]int)
	totals := make(CategoryTotals, 0)

	for _, e := range expenses {
		name := strings.TrimSpace(e.Category)
		if name == "" {
			name = UncategorizedLabel
		}

		i, ok := index[normalizeCategory(name)]
		if !ok {
			i = len(totals)
			index[normalizeCategory(name)] = i
			totals = append(totals, CategoryTotal{Category: name})
		}
		totals[i].Total += ExpenseAmount(e)
	}

	return totals
}

// Get возвращает сумму по категории или 0, если категории нет.
func (ts CategoryTotals) Get(category string) float64 {
	want := normalizeCategory(category)
	for _, t := range ts {
		if normalizeCategory(t.Category) == want {
			return t.Total
		}
	}
	return 0
}

// Sum возвращает сумму всех корзин; по построению она равна сумме коллекции.
func (ts CategoryTotals) Sum() float64 {
	var total float64
	for _, t := range ts {
		total += t.Total
	}
	return total
}

// Top возвращает n самых затратных категорий по убыванию суммы.
// При равенстве сумм сохраняется порядок первого появления.
func (ts CategoryTotals) Top(n int) CategoryTotals {
	sorted := make(CategoryTotals, len(ts))
	copy(sorted, ts)

	// Устойчивая сортировка вставками: коллекции категорий маленькие.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Total > sorted[j-1].Total; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
