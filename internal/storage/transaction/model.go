package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type is the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a transaction record.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Amount          decimal.Decimal
	Category        string
	Description     *string
	TransactionDate time.Time
	TransactionType Type
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID          uuid.UUID
	Amount          decimal.Decimal
	Category        string
	Description     *string
	TransactionDate time.Time
	TransactionType Type
}

// Order selects the sort applied by List.
type Order int

const (
	OrderDateDesc Order = iota
	OrderDateAsc
	OrderAmountAsc
	OrderAmountDesc
)

// TransactionFilter specifies filters for listing transactions. UserID is always applied.
type TransactionFilter struct {
	UserID   uuid.UUID
	Type     *Type
	Category *string
	From     *time.Time // inclusive
	To       *time.Time // exclusive
	Order    Order
}

// MonthTotal is the sum of one user's transactions of a single type in a month.
type MonthTotal struct {
	Month string
	Type  Type
	Total decimal.Decimal
}

// IReader defines the read operations on the transactions table.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	// MonthlyTotals groups a user's transactions by month key and type. An empty
	// month returns every month.
	MonthlyTotals(ctx context.Context, userID uuid.UUID, month string) ([]*MonthTotal, error)
}

// IWriter defines the transactional operations on the transactions table.
type IWriter interface {
	IReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type transactionRow struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"`
	Category        string          `db:"category"`
	Description     *string         `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	TransactionType string          `db:"transaction_type"`
}

type monthTotalRow struct {
	Month           string          `db:"month"`
	TransactionType string          `db:"transaction_type"`
	Total           decimal.Decimal `db:"total"`
}

var columns = []any{"id", "user_id", "amount", "category", "description", "transaction_date", "transaction_type"}

func rowToTransaction(row transactionRow) *Transaction {
	return &Transaction{
		ID:              row.ID,
		UserID:          row.UserID,
		Amount:          row.Amount,
		Category:        row.Category,
		Description:     row.Description,
		TransactionDate: row.TransactionDate.UTC(),
		TransactionType: Type(row.TransactionType),
	}
}
