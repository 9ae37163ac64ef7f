package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/apperror"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

func newTestAnalyticsService(t *testing.T) (*AnalyticsService, *mockTransactionReader, *fakeStore) {
	t.Helper()
	reader := new(mockTransactionReader)
	store := &fakeStore{reader: &storage.Reader{Transactions: reader}}
	return NewAnalyticsService(store), reader, store
}

func tx(date string, amount, category string, txType transaction.Type) *transaction.Transaction {
	when, err := time.Parse(time.RFC3339, date)
	if err != nil {
		panic(err)
	}
	return &transaction.Transaction{
		ID:              uuid.Must(uuid.NewV4()),
		Amount:          decimal.RequireFromString(amount),
		Category:        category,
		TransactionDate: when,
		TransactionType: txType,
	}
}

// -- MonthlySummary --

func TestMonthlySummary(t *testing.T) {
	svc, reader, _ := newTestAnalyticsService(t)
	userID := uuid.Must(uuid.NewV4())

	reader.On("MonthlyTotals", mock.Anything, userID, "2024-01").Return([]*transaction.MonthTotal{
		{Month: "2024-01", Type: transaction.TypeIncome, Total: decimal.RequireFromString("3000.00")},
		{Month: "2024-01", Type: transaction.TypeExpense, Total: decimal.RequireFromString("1250.75")},
	}, nil)

	got, err := svc.MonthlySummary(context.Background(), userID, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", got.Month)
	assert.Equal(t, "3000.00", got.Income.StringFixed(2))
	assert.Equal(t, "1250.75", got.Expenses.StringFixed(2))
	assert.Equal(t, "1749.25", got.NetBalance.StringFixed(2))
}

func TestMonthlySummary_NoTransactionsIsZero(t *testing.T) {
	svc, reader, _ := newTestAnalyticsService(t)
	reader.On("MonthlyTotals", mock.Anything, mock.Anything, "not-a-month").Return([]*transaction.MonthTotal{}, nil)

	got, err := svc.MonthlySummary(context.Background(), uuid.Must(uuid.NewV4()), "not-a-month")
	require.NoError(t, err)
	assert.True(t, got.Income.IsZero())
	assert.True(t, got.Expenses.IsZero())
	assert.True(t, got.NetBalance.IsZero())
}

func TestMonthlySummary_MonthRequired(t *testing.T) {
	svc, _, store := newTestAnalyticsService(t)

	_, err := svc.MonthlySummary(context.Background(), uuid.Must(uuid.NewV4()), " ")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Zero(t, store.reads)
}

// -- SpendingAnalysis --

func TestSpendingAnalysis_JanuaryRange(t *testing.T) {
	svc, reader, _ := newTestAnalyticsService(t)
	userID := uuid.Must(uuid.NewV4())

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.UserID == userID &&
			f.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) &&
			*f.Type == transaction.TypeExpense &&
			f.Category == nil &&
			f.Order == transaction.OrderDateDesc
	})).Return([]*transaction.Transaction{
		tx("2024-01-31T23:30:00Z", "20.00", "Food", transaction.TypeExpense),
		tx("2024-01-20T10:00:00Z", "100.00", "Rent", transaction.TypeExpense),
		tx("2024-01-05T10:00:00Z", "15.50", "Food", transaction.TypeExpense),
	}, nil)

	got, err := svc.SpendingAnalysis(context.Background(), userID, SpendingFilter{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Category:  "all",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01"}, got.MonthlyTrend.Labels)
	assert.Equal(t, "135.5", got.MonthlyTrend.Values[0].String())

	assert.Equal(t, []string{"Rent", "Food"}, got.CategoryBreakdown.Labels)
	assert.Equal(t, "100", got.CategoryBreakdown.Values[0].String())
	assert.Equal(t, "35.5", got.CategoryBreakdown.Values[1].String())

	require.Len(t, got.RecentTransactions, 3)
	assert.Equal(t, "Food", got.RecentTransactions[0].Category)
}

func TestSpendingAnalysis_TrendAscendingAndRecentCapped(t *testing.T) {
	svc, reader, _ := newTestAnalyticsService(t)

	rows := []*transaction.Transaction{
		tx("2024-03-02T00:00:00Z", "1", "A", transaction.TypeExpense),
		tx("2024-03-01T00:00:00Z", "1", "B", transaction.TypeExpense),
		tx("2024-02-10T00:00:00Z", "2", "B", transaction.TypeExpense),
		tx("2024-02-01T00:00:00Z", "2", "A", transaction.TypeExpense),
		tx("2024-01-15T00:00:00Z", "4", "C", transaction.TypeExpense),
		tx("2024-01-01T00:00:00Z", "4", "C", transaction.TypeExpense),
	}
	reader.On("List", mock.Anything, mock.Anything).Return(rows, nil)

	got, err := svc.SpendingAnalysis(context.Background(), uuid.Must(uuid.NewV4()), SpendingFilter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, got.MonthlyTrend.Labels)
	assert.Equal(t, []string{"C", "A", "B"}, got.CategoryBreakdown.Labels, "ties broken by name")
	require.Len(t, got.RecentTransactions, 5)
	assert.Equal(t, rows[0].ID, got.RecentTransactions[0].ID)
}

func TestSpendingAnalysis_TypeSelection(t *testing.T) {
	tests := []struct {
		name     string
		txType   string
		wantType *transaction.Type
	}{
		{name: "all", txType: "all", wantType: nil},
		{name: "income", txType: "Income", wantType: ptr(transaction.TypeIncome)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, reader, _ := newTestAnalyticsService(t)
			reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
				if tc.wantType == nil {
					return f.Type == nil
				}
				return f.Type != nil && *f.Type == *tc.wantType
			})).Return([]*transaction.Transaction{tx("2024-01-01T00:00:00Z", "1", "A", transaction.TypeIncome)}, nil)

			_, err := svc.SpendingAnalysis(context.Background(), uuid.Must(uuid.NewV4()), SpendingFilter{TransactionType: tc.txType})
			assert.NoError(t, err)
		})
	}
}

func TestSpendingAnalysis_CategoryFilter(t *testing.T) {
	svc, reader, _ := newTestAnalyticsService(t)
	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Category != nil && *f.Category == "Food"
	})).Return([]*transaction.Transaction{tx("2024-01-01T00:00:00Z", "1", "Food", transaction.TypeExpense)}, nil)

	_, err := svc.SpendingAnalysis(context.Background(), uuid.Must(uuid.NewV4()), SpendingFilter{Category: "Food"})
	assert.NoError(t, err)
}

func TestSpendingAnalysis_NothingMatches(t *testing.T) {
	svc, reader, _ := newTestAnalyticsService(t)
	reader.On("List", mock.Anything, mock.Anything).Return([]*transaction.Transaction{}, nil)

	_, err := svc.SpendingAnalysis(context.Background(), uuid.Must(uuid.NewV4()), SpendingFilter{})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestSpendingAnalysis_InvalidInputBeforeQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter SpendingFilter
		want   string
	}{
		{name: "bad start", filter: SpendingFilter{StartDate: "01/01/2024"}, want: "start_date"},
		{name: "bad end", filter: SpendingFilter{StartDate: "2024-01-01", EndDate: "2024-02-30"}, want: "end_date"},
		{name: "reversed", filter: SpendingFilter{StartDate: "2024-02-01", EndDate: "2024-01-31"}, want: "after"},
		{name: "bad type", filter: SpendingFilter{TransactionType: "transfer"}, want: "transaction_type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, store := newTestAnalyticsService(t)
			_, err := svc.SpendingAnalysis(context.Background(), uuid.Must(uuid.NewV4()), tc.filter)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindValidation))
			assert.Contains(t, err.Error(), tc.want)
			assert.Zero(t, store.reads)
		})
	}
}

func TestSpendingAnalysis_SingleBound(t *testing.T) {
	svc, reader, _ := newTestAnalyticsService(t)
	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.From == nil && f.To.Equal(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	})).Return([]*transaction.Transaction{tx("2024-06-01T00:00:00Z", "1", "A", transaction.TypeExpense)}, nil)

	_, err := svc.SpendingAnalysis(context.Background(), uuid.Must(uuid.NewV4()), SpendingFilter{EndDate: "2024-06-30"})
	assert.NoError(t, err)
}

// -- ExportCSV --

func TestExportCSV(t *testing.T) {
	svc, reader, _ := newTestAnalyticsService(t)
	userID := uuid.Must(uuid.NewV4())
	note := "March rent, flat 2"

	withNote := tx("2024-03-01T08:00:00Z", "1200", "Rent", transaction.TypeExpense)
	withNote.Description = &note
	reader.On("List", mock.Anything, &transaction.TransactionFilter{UserID: userID, Order: transaction.OrderDateDesc}).
		Return([]*transaction.Transaction{
			withNote,
			tx("2024-02-28T20:00:00Z", "3000.5", "Salary", transaction.TypeIncome),
		}, nil)

	out, err := svc.ExportCSV(context.Background(), userID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Amount,Category,Type,Description", lines[0])
	assert.Equal(t, `2024-03-01,1200.00,Rent,Expense,"March rent, flat 2"`, lines[1])
	assert.Equal(t, "2024-02-28,3000.50,Salary,Income,N/A", lines[2])
}

func TestExportCSV_Empty(t *testing.T) {
	svc, reader, _ := newTestAnalyticsService(t)
	reader.On("List", mock.Anything, mock.Anything).Return([]*transaction.Transaction{}, nil)

	out, err := svc.ExportCSV(context.Background(), uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	assert.Equal(t, "Date,Amount,Category,Type,Description\nNo transactions found for the current user\n", string(out))
}

func TestExportCSV_StorageFailure(t *testing.T) {
	svc, reader, _ := newTestAnalyticsService(t)
	reader.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := svc.ExportCSV(context.Background(), uuid.Must(uuid.NewV4()))
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindInternal, appErr.Kind)
	assert.Equal(t, "Error generating export. Please try again later.", appErr.Message)
	assert.ErrorContains(t, err, "connection reset")
}

func ptr[T any](v T) *T {
	return &v
}
