package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// User is the public view of an account holder. It never carries the password hash.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	IsActive  bool
	CreatedAt time.Time
}

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Amount          decimal.Decimal
	Category        string
	Description     *string
	TransactionDate time.Time
	TransactionType transaction.Type
}

// Budget is a monthly limit annotated with what has been spent against it.
type Budget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Limit     decimal.Decimal
	Month     string
	CreatedAt time.Time
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

type MonthlySummary struct {
	Month      string
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	NetBalance decimal.Decimal
}

// Series is a labelled sequence of totals, ready for charting.
type Series struct {
	Labels []string
	Values []decimal.Decimal
}

type SpendingAnalysis struct {
	MonthlyTrend       Series
	CategoryBreakdown  Series
	RecentTransactions []*Transaction
}

type Conversion struct {
	Amount          decimal.Decimal
	FromCurrency    string
	ToCurrency      string
	ConvertedAmount decimal.Decimal
}

func userFromStorage(u *user.User) *User {
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func transactionFromStorage(t *transaction.Transaction) *Transaction {
	return &Transaction{
		ID:              t.ID,
		UserID:          t.UserID,
		Amount:          t.Amount,
		Category:        t.Category,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		TransactionType: t.TransactionType,
	}
}

func budgetFromStorage(b *budget.Budget, spent decimal.Decimal) *Budget {
	return &Budget{
		ID:        b.ID,
		UserID:    b.UserID,
		Limit:     b.Limit,
		Month:     b.Month,
		CreatedAt: b.CreatedAt,
		Spent:     spent,
		Remaining: b.Limit.Sub(spent),
	}
}
