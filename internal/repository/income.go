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

type IncomeRepository struct {
	db *pgxpool.Pool
}

type IncomeInput struct {
	Title    string
	Amount   float64
	Currency string
	Source   string
	Date     *time.Time
	Notes    string
}

// NewIncomeRepository создает репозиторий доходов.
func NewIncomeRepository(db *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{db: db}
}

const incomeColumns = `id, user_id, title, amount, currency, source, date, notes, created_at, updated_at`

func scanIncome(row pgx.Row) (models.Income, error) {
	var inc models.Income
	err := row.Scan(&inc.ID, &inc.UserID, &inc.Title, &inc.Amount, &inc.Currency, &inc.Source, &inc.Date, &inc.Notes, &inc.CreatedAt, &inc.UpdatedAt)
	return inc, err
}

// Create добавляет доход пользователя.
func (r *IncomeRepository) Create(ctx context.Context, userID uuid.UUID, in IncomeInput) (models.Income, error) {
	income, err := scanIncome(r.db.QueryRow(ctx,
		`INSERT INTO incomes (id, user_id, title, amount, currency, source, date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+incomeColumns,
		uuid.New(), userID, in.Title, in.Amount, in.Currency, in.Source, in.Date, in.Notes,
	))
	if err != nil {
		return income, err
	}

	return income, nil
}

// Update изменяет доход пользователя.
func (r *IncomeRepository) Update(ctx context.Context, userID, incomeID uuid.UUID, in IncomeInput) (models.Income, error) {
	income, err := scanIncome(r.db.QueryRow(ctx,
		`UPDATE incomes
		 SET title = $3,
		     amount = $4,
		     currency = $5,
		     source = $6,
		     date = $7,
		     notes = $8,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+incomeColumns,
		incomeID, userID, in.Title, in.Amount, in.Currency, in.Source, in.Date, in.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return income, ErrNotFound
		}
		return income, err
	}

	return income, nil
}

// Delete удаляет доход пользователя.
func (r *IncomeRepository) Delete(ctx context.Context, userID, incomeID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM incomes WHERE id = $1 AND user_id = $2`,
		incomeID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListByUser возвращает доходы пользователя, новые первыми.
func (r *IncomeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Income, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+incomeColumns+`
		 FROM incomes
		 WHERE user_id = $1
		 ORDER BY date DESC NULLS LAST, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incomes := make([]models.Income, 0)
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return incomes, nil
}
