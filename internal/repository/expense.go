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

type ExpenseRepository struct {
	db *pgxpool.Pool
}

type ExpenseInput struct {
	Title         string
	Amount        float64
	ExpenseAmount float64
	Currency      string
	Category      string
	BudgetID      *uuid.UUID
	Date          *time.Time
	Notes         string
}

// NewExpenseRepository создает репозиторий расходов.
func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `id, user_id, title, amount, expense_amount, currency, category, budget_id, date, notes, created_at, updated_at`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var e models.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.ExpenseAmount, &e.Currency, &e.Category, &e.BudgetID, &e.Date, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Create добавляет расход пользователя.
func (r *ExpenseRepository) Create(ctx context.Context, userID uuid.UUID, in ExpenseInput) (models.Expense, error) {
	expense, err := scanExpense(r.db.QueryRow(ctx,
		`INSERT INTO expenses (id, user_id, title, amount, expense_amount, currency, category, budget_id, date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+expenseColumns,
		uuid.New(), userID, in.Title, in.Amount, in.ExpenseAmount, in.Currency, in.Category, in.BudgetID, in.Date, in.Notes,
	))
	if err != nil {
		return expense, err
	}

	return expense, nil
}

// Update изменяет расход пользователя.
func (r *ExpenseRepository) Update(ctx context.Context, userID, expenseID uuid.UUID, in ExpenseInput) (models.Expense, error) {
	expense, err := scanExpense(r.db.QueryRow(ctx,
		`UPDATE expenses
		 SET title = $3,
		     amount = $4,
		     expense_amount = $5,
		     currency = $6,
		     category = $7,
		     budget_id = $8,
		     date = $9,
		     notes = $10,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+expenseColumns,
		expenseID, userID, in.Title, in.Amount, in.ExpenseAmount, in.Currency, in.Category, in.BudgetID, in.Date, in.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense, ErrNotFound
		}
		return expense, err
	}

	return expense, nil
}

// Delete удаляет расход пользователя.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`,
		expenseID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID возвращает расход пользователя.
func (r *ExpenseRepository) GetByID(ctx context.Context, userID, expenseID uuid.UUID) (models.Expense, error) {
	expense, err := scanExpense(r.db.QueryRow(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses
		 WHERE id = $1 AND user_id = $2`,
		expenseID, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense, ErrNotFound
		}
		return expense, err
	}

	return expense, nil
}

// ListByUser возвращает расходы пользователя, новые первыми.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses
		 WHERE user_id = $1
		 ORDER BY date DESC NULLS LAST, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}
