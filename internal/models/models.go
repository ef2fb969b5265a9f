package models

import (
	"time"

	"github.com/google/uuid"
)

type RecurringType string

const (
	RecurringTypeExpense RecurringType = "expense"
	RecurringTypeIncome  RecurringType = "income"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Expense хранит сумму в двух полях: каноническом Amount и устаревшем
// ExpenseAmount. Исторические записи могут заполнять любое из них,
// приоритет выбирает report.ResolveAmount.
type Expense struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Title         string     `json:"title"`
	Amount        float64    `json:"amount"`
	ExpenseAmount float64    `json:"expenseAmount,omitempty"`
	Currency      string     `json:"currency"`
	Category      string     `json:"category"`
	BudgetID      *uuid.UUID `json:"budget_id,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Budget struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Category    string     `json:"category"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Income struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Source    string     `json:"source,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type DebtPayment struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// Debt: Amount — исходная сумма долга, Remaining — актуальный остаток.
type Debt struct {
	ID           uuid.UUID     `json:"id"`
	UserID       uuid.UUID     `json:"user_id"`
	Title        string        `json:"title"`
	Amount       float64       `json:"amount"`
	Remaining    float64       `json:"remaining"`
	InterestRate *float64      `json:"interest_rate,omitempty"`
	DueDate      *time.Time    `json:"due_date,omitempty"`
	Paid         bool          `json:"paid"`
	Payments     []DebtPayment `json:"payments,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type RecurringItem struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Title     string        `json:"title"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency,omitempty"`
	Type      RecurringType `json:"type"`
	Frequency string        `json:"frequency,omitempty"`
	NextDue   *time.Time    `json:"next_due,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type SavingsGoal struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Amount    float64    `json:"amount"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
