package actions

import (
	"context"

	"github.com/carson-networks/finance-server/internal/storage"
)

// IAction is a unit of work executed inside a single database transaction.
// Returning an error rolls the transaction back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
