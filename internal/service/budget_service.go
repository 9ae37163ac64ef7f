package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// BudgetService handles budgets. Spent and remaining amounts are computed on
// every read from the current transactions.
type BudgetService struct {
	storage  readerSource
	operator actionProcessor
}

func NewBudgetService(store readerSource, operator actionProcessor) *BudgetService {
	return &BudgetService{
		storage:  store,
		operator: operator,
	}
}

// CreateBudget stores a budget for month. A user has at most one budget per month.
func (s *BudgetService) CreateBudget(ctx context.Context, userID uuid.UUID, limit decimal.Decimal, month string) (*Budget, error) {
	if err := validateAmount("limit", limit); err != nil {
		return nil, err
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	action := &actions.CreateBudget{
		UserID: userID,
		Limit:  limit,
		Month:  month,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	var spent map[string]decimal.Decimal
	err := s.storage.Read(ctx, func(reader *storage.Reader) error {
		var err error
		spent, err = expensesByMonth(ctx, reader, userID, month)
		return err
	})
	if err != nil {
		return nil, err
	}

	return budgetFromStorage(action.Created, spent[month]), nil
}

// ListBudgets returns userID's budgets, newest month first.
func (s *BudgetService) ListBudgets(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	var (
		rows  []*budget.Budget
		spent map[string]decimal.Decimal
	)
	err := s.storage.Read(ctx, func(reader *storage.Reader) error {
		var err error
		rows, err = reader.Budgets.ListByUser(ctx, userID)
		if err != nil || len(rows) == 0 {
			return err
		}
		spent, err = expensesByMonth(ctx, reader, userID, "")
		return err
	})
	if err != nil {
		return nil, err
	}

	result := make([]*Budget, len(rows))
	for i, row := range rows {
		result[i] = budgetFromStorage(row, spent[row.Month])
	}
	return result, nil
}

// expensesByMonth sums userID's expenses per month key. An empty month covers
// every month.
func expensesByMonth(ctx context.Context, reader *storage.Reader, userID uuid.UUID, month string) (map[string]decimal.Decimal, error) {
	totals, err := reader.Transactions.MonthlyTotals(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	spent := make(map[string]decimal.Decimal, len(totals))
	for _, total := range totals {
		if total.Type == transaction.TypeExpense {
			spent[total.Month] = spent[total.Month].Add(total.Total)
		}
	}
	return spent, nil
}
