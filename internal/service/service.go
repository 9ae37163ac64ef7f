package service

import (
	"context"

	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage"
)

// readerSource runs read-only work against a consistent snapshot.
type readerSource interface {
	Read(ctx context.Context, fn func(reader *storage.Reader) error) error
}

// actionProcessor runs a mutation inside its own database transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Auth        *AuthService
	Transaction *TransactionService
	Budget      *BudgetService
	Analytics   *AnalyticsService
	Currency    *CurrencyService
}

// NewService creates a new Service. Reads go to store, writes through operator.
func NewService(store readerSource, operator actionProcessor, tokens tokenIssuer, hasher passwordHasher, converter currencyConverter) *Service {
	return &Service{
		Auth:        NewAuthService(store, operator, tokens, hasher),
		Transaction: NewTransactionService(store, operator),
		Budget:      NewBudgetService(store, operator),
		Analytics:   NewAnalyticsService(store),
		Currency:    NewCurrencyService(converter),
	}
}
