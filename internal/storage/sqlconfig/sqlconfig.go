// Package sqlconfig holds the table names, shared SQL fragments and error
// translation used by the entity storage packages.
package sqlconfig

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	UsersTable        = "users"
	TransactionsTable = "transactions"
	BudgetsTable      = "budgets"
)

// MonthKeyExpr renders a transaction date as its "YYYY-MM" month key in UTC.
const MonthKeyExpr = "to_char(transaction_date AT TIME ZONE 'UTC', 'YYYY-MM')"

const uniqueViolation = "23505"

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

// TranslateError maps driver errors onto storage sentinels.
func TranslateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	}
	return err
}

// IsNoRows reports whether err is the "no rows" result of a single-row query.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
