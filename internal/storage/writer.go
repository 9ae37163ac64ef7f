package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

type Writer struct {
	tx           bob.Tx
	Users        user.IWriter
	Transactions transaction.IWriter
	Budgets      budget.IWriter
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:           tx,
		Users:        user.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
		Budgets:      budget.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
