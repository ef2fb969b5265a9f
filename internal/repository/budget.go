package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/expense-tracker/backend/internal/models"
)

type BudgetRepository struct {
	db *pgxpool.Pool
}

type BudgetInput struct {
	Name        string
	Description string
	Amount      float64
	Currency    string
	Category    string
	StartDate   *time.Time
	EndDate     *time.Time
}

// NewBudgetRepository создает репозиторий бюджетов.
func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

const budgetColumns = `id, user_id, name, description, amount, currency, category, start_date, end_date, created_at, updated_at`

func scanBudget(row pgx.Row) (models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Description, &b.Amount, &b.Currency, &b.Category, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Create добавляет бюджет. Повторное создание бюджета той же категории
// не ошибка: сумма складывается с существующим бюджетом.
func (r *BudgetRepository) Create(ctx context.Context, userID uuid.UUID, in BudgetInput) (models.Budget, error) {
	budget, err := scanBudget(r.db.QueryRow(ctx,
		`INSERT INTO budgets (id, user_id, name, description, amount, currency, category, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id, category_key) DO UPDATE
		 SET amount = budgets.amount + EXCLUDED.amount,
		     updated_at = NOW()
		 RETURNING `+budgetColumns,
		uuid.New(), userID, in.Name, in.Description, in.Amount, in.Currency, in.Category, in.StartDate, in.EndDate,
	))
	if err != nil {
		return budget, err
	}

	return budget, nil
}

// Update изменяет бюджет пользователя.
func (r *BudgetRepository) Update(ctx context.Context, userID, budgetID uuid.UUID, in BudgetInput) (models.Budget, error) {
	budget, err := scanBudget(r.db.QueryRow(ctx,
		`UPDATE budgets
		 SET name = $3,
		     description = $4,
		     amount = $5,
		     currency = $6,
		     category = $7,
		     start_date = $8,
		     end_date = $9,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+budgetColumns,
		budgetID, userID, in.Name, in.Description, in.Amount, in.Currency, in.Category, in.StartDate, in.EndDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return budget, ErrNotFound
		}
		return budget, err
	}

	return budget, nil
}

// Delete удаляет бюджет; расходы с явной ссылкой на него остаются,
// ссылка обнуляется внешним ключом.
func (r *BudgetRepository) Delete(ctx context.Context, userID, budgetID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`,
		budgetID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID возвращает бюджет пользователя.
func (r *BudgetRepository) GetByID(ctx context.Context, userID, budgetID uuid.UUID) (models.Budget, error) {
	budget, err := scanBudget(r.db.QueryRow(ctx,
		`SELECT `+budgetColumns+`
		 FROM budgets
		 WHERE id = $1 AND user_id = $2`,
		budgetID, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return budget, ErrNotFound
		}
		return budget, err
	}

	return budget, nil
}

// ListByUser возвращает бюджеты пользователя в порядке создания.
func (r *BudgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+budgetColumns+`
		 FROM budgets
		 WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := make([]models.Budget, 0)
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return budgets, nil
}
