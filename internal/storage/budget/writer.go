package budget

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

var _ IWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByUserMonth returns the user's budget for month, or nil when none exists.
func (w *Writer) FindByUserMonth(ctx context.Context, userID uuid.UUID, month string) (*Budget, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(sqlconfig.BudgetsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("month").EQ(psql.Arg(month))),
	)
	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[budgetRow]())
	if sqlconfig.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToBudget(row), nil
}

func (w *Writer) Insert(ctx context.Context, create *BudgetCreate) (*Budget, error) {
	query := psql.Insert(
		im.Into(sqlconfig.BudgetsTable, "user_id", "limit_amount", "month"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Limit),
			psql.Arg(create.Month),
		),
		im.Returning(columns...),
	)
	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[budgetRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError(err)
	}
	return rowToBudget(row), nil
}
