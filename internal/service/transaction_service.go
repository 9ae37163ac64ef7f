package service

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/apperror"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

var orderings = map[string]transaction.Order{
	"":                  transaction.OrderDateDesc,
	"-transaction_date": transaction.OrderDateDesc,
	"transaction_date":  transaction.OrderDateAsc,
	"amount":            transaction.OrderAmountAsc,
	"-amount":           transaction.OrderAmountDesc,
}

// TransactionCreate is the caller-supplied part of a new transaction. The owner
// and date are never taken from the caller.
type TransactionCreate struct {
	Amount          decimal.Decimal
	Category        string
	Description     *string
	TransactionType string
}

// TransactionListFilter holds the raw list query parameters.
type TransactionListFilter struct {
	TransactionType string
	Category        string
	StartDate       string
	EndDate         string
	Ordering        string
}

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  readerSource
	operator actionProcessor
	now      func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store readerSource, operator actionProcessor) *TransactionService {
	return &TransactionService{
		storage:  store,
		operator: operator,
		now:      time.Now,
	}
}

// CreateTransaction records a transaction for userID dated now.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, create TransactionCreate) (*Transaction, error) {
	if err := validateAmount("amount", create.Amount); err != nil {
		return nil, err
	}
	category, err := validateCategory(create.Category)
	if err != nil {
		return nil, err
	}
	txType := transaction.Type(create.TransactionType)
	if !txType.Valid() {
		return nil, apperror.Validation("transaction_type must be 'income' or 'expense'")
	}

	var description *string
	if create.Description != nil && strings.TrimSpace(*create.Description) != "" {
		description = create.Description
	}

	action := &actions.CreateTransaction{
		UserID:          userID,
		Amount:          create.Amount,
		Category:        category,
		Description:     description,
		TransactionType: txType,
		TransactionDate: s.now().UTC(),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return transactionFromStorage(action.Created), nil
}

// ListTransactions returns userID's transactions matching the filter. The date
// range applies only when both ends are given.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, filter TransactionListFilter) ([]*Transaction, error) {
	storageFilter := &transaction.TransactionFilter{UserID: userID}

	if filter.TransactionType != "" {
		txType := transaction.Type(filter.TransactionType)
		if !txType.Valid() {
			return nil, apperror.Validation("transaction_type must be 'income' or 'expense'")
		}
		storageFilter.Type = &txType
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		storageFilter.Category = &category
	}

	order, ok := orderings[filter.Ordering]
	if !ok {
		return nil, apperror.Validation("invalid ordering '%s'", filter.Ordering)
	}
	storageFilter.Order = order

	if filter.StartDate != "" && filter.EndDate != "" {
		from, to, err := parseDateRange(filter.StartDate, filter.EndDate)
		if err != nil {
			return nil, err
		}
		storageFilter.From = from
		storageFilter.To = to
	}

	var rows []*transaction.Transaction
	err := s.storage.Read(ctx, func(reader *storage.Reader) error {
		var err error
		rows, err = reader.Transactions.List(ctx, storageFilter)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = transactionFromStorage(row)
	}
	return result, nil
}

// DeleteTransaction removes one of userID's transactions. An id that is not a
// UUID cannot exist and is reported as not found.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID uuid.UUID, id string) error {
	transactionID, err := uuid.FromString(id)
	if err != nil {
		return apperror.NotFound("transaction not found")
	}

	return s.operator.Process(ctx, &actions.DeleteTransaction{
		UserID:        userID,
		TransactionID: transactionID,
	})
}
