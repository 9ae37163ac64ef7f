package budget

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
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

// ListByUser returns the user's budgets, most recent month first.
func (r *Reader) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(sqlconfig.BudgetsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("month")).Desc(),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[budgetRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Budget, len(rows))
	for i, row := range rows {
		result[i] = rowToBudget(row)
	}
	return result, nil
}
