package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

type mockTransactionWriter struct {
	mock.Mock
}

func (m *mockTransactionWriter) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*transaction.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionWriter) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	txs, _ := args.Get(0).([]*transaction.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionWriter) MonthlyTotals(ctx context.Context, userID uuid.UUID, month string) ([]*transaction.MonthTotal, error) {
	args := m.Called(ctx, userID, month)
	totals, _ := args.Get(0).([]*transaction.MonthTotal)
	return totals, args.Error(1)
}

func (m *mockTransactionWriter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*transaction.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionWriter) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	args := m.Called(ctx, create)
	tx, _ := args.Get(0).(*transaction.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionWriter) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockBudgetWriter struct {
	mock.Mock
}

func (m *mockBudgetWriter) ListByUser(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	args := m.Called(ctx, userID)
	budgets, _ := args.Get(0).([]*budget.Budget)
	return budgets, args.Error(1)
}

func (m *mockBudgetWriter) FindByUserMonth(ctx context.Context, userID uuid.UUID, month string) (*budget.Budget, error) {
	args := m.Called(ctx, userID, month)
	b, _ := args.Get(0).(*budget.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetWriter) Insert(ctx context.Context, create *budget.BudgetCreate) (*budget.Budget, error) {
	args := m.Called(ctx, create)
	b, _ := args.Get(0).(*budget.Budget)
	return b, args.Error(1)
}

type mockUserWriter struct {
	mock.Mock
}

func (m *mockUserWriter) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserWriter) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserWriter) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserWriter) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserWriter) Insert(ctx context.Context, create *user.UserCreate) (*user.User, error) {
	args := m.Called(ctx, create)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
