package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

var _ IReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns the transaction with the given id, or nil when none exists.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return findByID(ctx, r.exec, id, false)
}

// List returns the transactions matching the filter.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(sqlconfig.TransactionsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))),
	}
	if filter.Type != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("transaction_type").EQ(psql.Arg(string(*filter.Type)))))
	}
	if filter.Category != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("category").EQ(psql.Arg(*filter.Category))))
	}
	if filter.From != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(*filter.From))))
	}
	if filter.To != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").LT(psql.Arg(*filter.To))))
	}

	switch filter.Order {
	case OrderDateAsc:
		queryMods = append(queryMods, sm.OrderBy(psql.Quote("transaction_date")).Asc())
	case OrderAmountAsc:
		queryMods = append(queryMods, sm.OrderBy(psql.Quote("amount")).Asc())
	case OrderAmountDesc:
		queryMods = append(queryMods, sm.OrderBy(psql.Quote("amount")).Desc())
	default:
		queryMods = append(queryMods, sm.OrderBy(psql.Quote("transaction_date")).Desc())
	}
	queryMods = append(queryMods, sm.OrderBy(psql.Quote("id")).Desc())

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}

// MonthlyTotals sums amounts per month key and transaction type.
func (r *Reader) MonthlyTotals(ctx context.Context, userID uuid.UUID, month string) ([]*MonthTotal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(
			psql.Raw(sqlconfig.MonthKeyExpr+" AS month"),
			"transaction_type",
			psql.Raw("SUM(amount) AS total"),
		),
		sm.From(sqlconfig.TransactionsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.GroupBy(psql.Raw(sqlconfig.MonthKeyExpr)),
		sm.GroupBy("transaction_type"),
		sm.OrderBy(psql.Raw(sqlconfig.MonthKeyExpr)).Asc(),
	}
	if month != "" {
		queryMods = append(queryMods, sm.Where(psql.Raw(sqlconfig.MonthKeyExpr+" = ?", month)))
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[monthTotalRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*MonthTotal, len(rows))
	for i, row := range rows {
		result[i] = &MonthTotal{
			Month: row.Month,
			Type:  Type(row.TransactionType),
			Total: row.Total,
		}
	}
	return result, nil
}

func findByID(ctx context.Context, exec bob.Executor, id uuid.UUID, forUpdate bool) (*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(sqlconfig.TransactionsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if sqlconfig.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToTransaction(row), nil
}
