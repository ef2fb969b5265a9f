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

type RecurringRepository struct {
	db *pgxpool.Pool
}

type RecurringInput struct {
	Title     string
	Amount    float64
	Currency  string
	Type      models.RecurringType
	Frequency string
	NextDue   *time.Time
}

// NewRecurringRepository создает репозиторий регулярных операций.
func NewRecurringRepository(db *pgxpool.Pool) *RecurringRepository {
	return &RecurringRepository{db: db}
}

const recurringColumns = `id, user_id, title, amount, currency, type, frequency, next_due, created_at, updated_at`

func scanRecurring(row pgx.Row) (models.RecurringItem, error) {
	var item models.RecurringItem
	err := row.Scan(&item.ID, &item.UserID, &item.Title, &item.Amount, &item.Currency, &item.Type, &item.Frequency, &item.NextDue, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

// Create добавляет регулярную операцию.
func (r *RecurringRepository) Create(ctx context.Context, userID uuid.UUID, in RecurringInput) (models.RecurringItem, error) {
	item, err := scanRecurring(r.db.QueryRow(ctx,
		`INSERT INTO recurring_items (id, user_id, title, amount, currency, type, frequency, next_due)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+recurringColumns,
		uuid.New(), userID, in.Title, in.Amount, in.Currency, in.Type, in.Frequency, in.NextDue,
	))
	if err != nil {
		return item, err
	}

	return item, nil
}

// Update изменяет регулярную операцию.
func (r *RecurringRepository) Update(ctx context.Context, userID, itemID uuid.UUID, in RecurringInput) (models.RecurringItem, error) {
	item, err := scanRecurring(r.db.QueryRow(ctx,
		`UPDATE recurring_items
		 SET title = $3,
		     amount = $4,
		     currency = $5,
		     type = $6,
		     frequency = $7,
		     next_due = $8,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+recurringColumns,
		itemID, userID, in.Title, in.Amount, in.Currency, in.Type, in.Frequency, in.NextDue,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return item, ErrNotFound
		}
		return item, err
	}

	return item, nil
}

// Delete удаляет регулярную операцию.
func (r *RecurringRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM recurring_items WHERE id = $1 AND user_id = $2`,
		itemID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListByUser возвращает регулярные операции, ближайшие сроки первыми.
func (r *RecurringRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.RecurringItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+recurringColumns+`
		 FROM recurring_items
		 WHERE user_id = $1
		 ORDER BY next_due NULLS LAST, created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.RecurringItem, 0)
	for rows.Next() {
		item, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
