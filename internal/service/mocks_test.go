package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// fakeStore hands the same Reader to every Read call.
type fakeStore struct {
	reader *storage.Reader
	reads  int
}

func (f *fakeStore) Read(_ context.Context, fn func(reader *storage.Reader) error) error {
	f.reads++
	return fn(f.reader)
}

type mockOperator struct {
	mock.Mock
}

func (m *mockOperator) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*transaction.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionReader) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	txs, _ := args.Get(0).([]*transaction.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionReader) MonthlyTotals(ctx context.Context, userID uuid.UUID, month string) ([]*transaction.MonthTotal, error) {
	args := m.Called(ctx, userID, month)
	totals, _ := args.Get(0).([]*transaction.MonthTotal)
	return totals, args.Error(1)
}

type mockBudgetReader struct {
	mock.Mock
}

func (m *mockBudgetReader) ListByUser(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	args := m.Called(ctx, userID)
	budgets, _ := args.Get(0).([]*budget.Budget)
	return budgets, args.Error(1)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockUserReader) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) IssuePair(userID uuid.UUID) (*auth.TokenPair, error) {
	args := m.Called(userID)
	pair, _ := args.Get(0).(*auth.TokenPair)
	return pair, args.Error(1)
}

func (m *mockTokenIssuer) IssueAccess(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenIssuer) ParseRefresh(token string) (uuid.UUID, error) {
	args := m.Called(token)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

type mockConverter struct {
	mock.Mock
}

func (m *mockConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to)
	converted, _ := args.Get(0).(decimal.Decimal)
	return converted, args.Error(1)
}
