package budget

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Budget represents a monthly spending limit. Spent amounts are never stored.
type Budget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Limit     decimal.Decimal
	Month     string
	CreatedAt time.Time
}

// BudgetCreate is the input for creating a budget.
type BudgetCreate struct {
	UserID uuid.UUID
	Limit  decimal.Decimal
	Month  string
}

// IReader defines the read operations on the budgets table.
type IReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Budget, error)
}

// IWriter defines the transactional operations on the budgets table.
type IWriter interface {
	IReader
	FindByUserMonth(ctx context.Context, userID uuid.UUID, month string) (*Budget, error)
	Insert(ctx context.Context, create *BudgetCreate) (*Budget, error)
}

type budgetRow struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Limit     decimal.Decimal `db:"limit_amount"`
	Month     string          `db:"month"`
	CreatedAt time.Time       `db:"created_at"`
}

var columns = []any{"id", "user_id", "limit_amount", "month", "created_at"}

func rowToBudget(row budgetRow) *Budget {
	return &Budget{
		ID:        row.ID,
		UserID:    row.UserID,
		Limit:     row.Limit,
		Month:     row.Month,
		CreatedAt: row.CreatedAt,
	}
}
