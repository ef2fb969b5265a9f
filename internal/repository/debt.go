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

type DebtRepository struct {
	db *pgxpool.Pool
}

type DebtInput struct {
	Title        string
	Amount       float64
	InterestRate *float64
	DueDate      *time.Time
}

// NewDebtRepository создает репозиторий долгов.
func NewDebtRepository(db *pgxpool.Pool) *DebtRepository {
	return &DebtRepository{db: db}
}

const debtColumns = `id, user_id, title, amount, remaining, interest_rate, due_date, paid, payments, created_at, updated_at`

func scanDebt(row pgx.Row) (models.Debt, error) {
	var d models.Debt
	err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Amount, &d.Remaining, &d.InterestRate, &d.DueDate, &d.Paid, &d.Payments, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// Create добавляет долг; остаток изначально равен сумме.
func (r *DebtRepository) Create(ctx context.Context, userID uuid.UUID, in DebtInput) (models.Debt, error) {
	debt, err := scanDebt(r.db.QueryRow(ctx,
		`INSERT INTO debts (id, user_id, title, amount, remaining, interest_rate, due_date)
		 VALUES ($1, $2, $3, $4, $4, $5, $6)
		 RETURNING `+debtColumns,
		uuid.New(), userID, in.Title, in.Amount, in.InterestRate, in.DueDate,
	))
	if err != nil {
		return debt, err
	}

	return debt, nil
}

// Update изменяет описание долга, не трогая остаток и платежи.
func (r *DebtRepository) Update(ctx context.Context, userID, debtID uuid.UUID, in DebtInput) (models.Debt, error) {
	debt, err := scanDebt(r.db.QueryRow(ctx,
		`UPDATE debts
		 SET title = $3,
		     amount = $4,
		     interest_rate = $5,
		     due_date = $6,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+debtColumns,
		debtID, userID, in.Title, in.Amount, in.InterestRate, in.DueDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return debt, ErrNotFound
		}
		return debt, err
	}

	return debt, nil
}

// AddPayment записывает платеж по долгу: уменьшает остаток, дописывает
// платеж в историю и закрывает долг при нулевом остатке.
func (r *DebtRepository) AddPayment(ctx context.Context, userID, debtID uuid.UUID, amount float64, paidAt time.Time) (models.Debt, error) {
	var debt models.Debt

	if amount <= 0 {
		return debt, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return debt, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var remaining float64
	err = tx.QueryRow(ctx,
		`SELECT remaining
		 FROM debts
		 WHERE id = $1 AND user_id = $2
		 FOR UPDATE`,
		debtID, userID,
	).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return debt, ErrNotFound
		}
		return debt, err
	}

	newRemaining := remaining - amount
	if newRemaining < 0 {
		newRemaining = 0
	}

	payment := models.DebtPayment{Amount: amount, Date: paidAt}

	debt, err = scanDebt(tx.QueryRow(ctx,
		`UPDATE debts
		 SET remaining = $3,
		     paid = ($3 <= 0),
		     payments = payments || $4::jsonb,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+debtColumns,
		debtID, userID, newRemaining, []models.DebtPayment{payment},
	))
	if err != nil {
		return debt, err
	}

	if err := tx.Commit(ctx); err != nil {
		return debt, err
	}

	return debt, nil
}

// Delete удаляет долг пользователя.
func (r *DebtRepository) Delete(ctx context.Context, userID, debtID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM debts WHERE id = $1 AND user_id = $2`,
		debtID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListByUser возвращает долги пользователя: открытые сначала,
// ближайшие сроки выше.
func (r *DebtRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Debt, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+debtColumns+`
		 FROM debts
		 WHERE user_id = $1
		 ORDER BY paid, due_date NULLS LAST, created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	debts := make([]models.Debt, 0)
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return debts, nil
}
