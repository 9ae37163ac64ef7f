package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperror"
	"github.com/carson-networks/finance-server/internal/storage"
)

// DeleteTransaction removes a transaction owned by UserID. The row is locked
// between the ownership check and the delete.
type DeleteTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByIDForUpdate(ctx, d.TransactionID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NotFound("transaction not found")
	}
	if existing.UserID != d.UserID {
		return apperror.Permission("you do not have permission to delete this transaction")
	}

	return writer.Transactions.Delete(ctx, d.TransactionID)
}
