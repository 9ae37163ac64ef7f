package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

// FindByIDForUpdate locks the row for the rest of the database transaction.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return findByID(ctx, w.tx, id, true)
}

// Insert creates a new transaction and returns the stored row.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	query := psql.Insert(
		im.Into(sqlconfig.TransactionsTable, "user_id", "amount", "category", "description", "transaction_date", "transaction_type"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Amount),
			psql.Arg(create.Category),
			psql.Arg(create.Description),
			psql.Arg(create.TransactionDate),
			psql.Arg(string(create.TransactionType)),
		),
		im.Returning(columns...),
	)

	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, sqlconfig.TranslateError(err)
	}
	return rowToTransaction(row), nil
}

// Delete removes the transaction with the given id.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(sqlconfig.TransactionsTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, query)
	return err
}
