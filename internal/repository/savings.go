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

type SavingsRepository struct {
	db *pgxpool.Pool
}

type SavingsGoalInput struct {
	Amount   float64
	Deadline *time.Time
}

// NewSavingsRepository создает репозиторий целей накоплений.
func NewSavingsRepository(db *pgxpool.Pool) *SavingsRepository {
	return &SavingsRepository{db: db}
}

const goalColumns = `id, user_id, amount, deadline, created_at, updated_at`

func scanGoal(row pgx.Row) (models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := row.Scan(&g.ID, &g.UserID, &g.Amount, &g.Deadline, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// Upsert создает или заменяет цель накоплений: у пользователя одна
// активная цель.
func (r *SavingsRepository) Upsert(ctx context.Context, userID uuid.UUID, in SavingsGoalInput) (models.SavingsGoal, error) {
	goal, err := scanGoal(r.db.QueryRow(ctx,
		`INSERT INTO savings_goals (id, user_id, amount, deadline)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET amount = EXCLUDED.amount,
		     deadline = EXCLUDED.deadline,
		     updated_at = NOW()
		 RETURNING `+goalColumns,
		uuid.New(), userID, in.Amount, in.Deadline,
	))
	if err != nil {
		return goal, err
	}

	return goal, nil
}

// Get возвращает цель накоплений пользователя.
func (r *SavingsRepository) Get(ctx context.Context, userID uuid.UUID) (models.SavingsGoal, error) {
	goal, err := scanGoal(r.db.QueryRow(ctx,
		`SELECT `+goalColumns+`
		 FROM savings_goals
		 WHERE user_id = $1`,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return goal, ErrNotFound
		}
		return goal, err
	}

	return goal, nil
}

// Delete удаляет цель накоплений.
func (r *SavingsRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM savings_goals WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// LastKnownSavings возвращает последний сохраненный снимок накоплений.
// Без снимка возвращается ноль: все вехи считаются непройденными.
func (r *SavingsRepository) LastKnownSavings(ctx context.Context, userID uuid.UUID) (float64, error) {
	var value float64

	err := r.db.QueryRow(ctx,
		`SELECT savings
		 FROM savings_state
		 WHERE user_id = $1`,
		userID,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	return value, nil
}

// RecordSavings сохраняет снимок накоплений для сравнения вех при
// следующем пересчете.
func (r *SavingsRepository) RecordSavings(ctx context.Context, userID uuid.UUID, savings float64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO savings_state (user_id, savings)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE
		 SET savings = EXCLUDED.savings,
		     updated_at = NOW()`,
		userID, savings,
	)
	return err
}
