package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

type CreateTransaction struct {
	UserID          uuid.UUID
	Amount          decimal.Decimal
	Category        string
	Description     *string
	TransactionType transaction.Type
	TransactionDate time.Time

	Created *transaction.Transaction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	created, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:          t.UserID,
		Amount:          t.Amount,
		Category:        t.Category,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		TransactionType: t.TransactionType,
	})
	if err != nil {
		return err
	}

	t.Created = created
	return nil
}
