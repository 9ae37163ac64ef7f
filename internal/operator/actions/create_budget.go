package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/apperror"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/sqlconfig"
)

type CreateBudget struct {
	UserID uuid.UUID
	Limit  decimal.Decimal
	Month  string

	Created *budget.Budget
}

func (b *CreateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Budgets.FindByUserMonth(ctx, b.UserID, b.Month)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.Validation("a budget for %s already exists", b.Month)
	}

	created, err := writer.Budgets.Insert(ctx, &budget.BudgetCreate{
		UserID: b.UserID,
		Limit:  b.Limit,
		Month:  b.Month,
	})
	if errors.Is(err, sqlconfig.ErrDuplicate) {
		return apperror.Validation("a budget for %s already exists", b.Month)
	}
	if err != nil {
		return err
	}

	b.Created = created
	return nil
}
