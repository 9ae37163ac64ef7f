package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

type Reader struct {
	Users        user.IReader
	Transactions transaction.IReader
	Budgets      budget.IReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Users:        user.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Budgets:      budget.NewReader(exec),
	}
}
