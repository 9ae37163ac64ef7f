package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/apperror"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

const (
	recentTransactionCount = 5

	exportFailedMessage = "Error generating export. Please try again later."
	exportEmptyMessage  = "No transactions found for the current user"
	noDescription       = "N/A"
)

var exportHeader = []string{"Date", "Amount", "Category", "Type", "Description"}

// SpendingFilter holds the raw spending analysis query parameters.
type SpendingFilter struct {
	StartDate       string
	EndDate         string
	Category        string
	TransactionType string
}

// AnalyticsService builds the aggregated read views.
type AnalyticsService struct {
	storage readerSource
}

func NewAnalyticsService(store readerSource) *AnalyticsService {
	return &AnalyticsService{storage: store}
}

// MonthlySummary totals income and expenses for month. A month with no
// transactions, including a malformed one, sums to zero.
func (s *AnalyticsService) MonthlySummary(ctx context.Context, userID uuid.UUID, month string) (*MonthlySummary, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return nil, apperror.Validation("month parameter is required")
	}

	var totals []*transaction.MonthTotal
	err := s.storage.Read(ctx, func(reader *storage.Reader) error {
		var err error
		totals, err = reader.Transactions.MonthlyTotals(ctx, userID, month)
		return err
	})
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{Month: month}
	for _, total := range totals {
		switch total.Type {
		case transaction.TypeIncome:
			summary.Income = summary.Income.Add(total.Total)
		case transaction.TypeExpense:
			summary.Expenses = summary.Expenses.Add(total.Total)
		}
	}
	summary.NetBalance = summary.Income.Sub(summary.Expenses)
	return summary, nil
}

// SpendingAnalysis groups matching transactions by month and by category.
// Expenses are analysed unless TransactionType says otherwise.
func (s *AnalyticsService) SpendingAnalysis(ctx context.Context, userID uuid.UUID, filter SpendingFilter) (*SpendingAnalysis, error) {
	from, to, err := parseDateRange(strings.TrimSpace(filter.StartDate), strings.TrimSpace(filter.EndDate))
	if err != nil {
		return nil, err
	}

	storageFilter := &transaction.TransactionFilter{
		UserID: userID,
		From:   from,
		To:     to,
		Order:  transaction.OrderDateDesc,
	}

	if category := strings.TrimSpace(filter.Category); category != "" && !strings.EqualFold(category, "all") {
		storageFilter.Category = &category
	}

	switch txType := strings.ToLower(strings.TrimSpace(filter.TransactionType)); txType {
	case "":
		expense := transaction.TypeExpense
		storageFilter.Type = &expense
	case "all":
	default:
		parsed := transaction.Type(txType)
		if !parsed.Valid() {
			return nil, apperror.Validation("transaction_type must be 'income', 'expense' or 'all'")
		}
		storageFilter.Type = &parsed
	}

	var rows []*transaction.Transaction
	err = s.storage.Read(ctx, func(reader *storage.Reader) error {
		var err error
		rows, err = reader.Transactions.List(ctx, storageFilter)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.NotFound("no transactions found for the given filters")
	}

	analysis := &SpendingAnalysis{
		MonthlyTrend:      groupTotals(rows, func(t *transaction.Transaction) string { return t.TransactionDate.UTC().Format(monthLayout) }, byLabel),
		CategoryBreakdown: groupTotals(rows, func(t *transaction.Transaction) string { return t.Category }, byValueDesc),
	}

	recent := rows[:min(recentTransactionCount, len(rows))]
	analysis.RecentTransactions = make([]*Transaction, len(recent))
	for i, row := range recent {
		analysis.RecentTransactions[i] = transactionFromStorage(row)
	}
	return analysis, nil
}

type groupedTotal struct {
	label string
	total decimal.Decimal
}

// byLabel orders groups by label ascending.
func byLabel(a, b groupedTotal) bool {
	return a.label < b.label
}

// byValueDesc orders groups by total descending, ties by label.
func byValueDesc(a, b groupedTotal) bool {
	if cmp := a.total.Cmp(b.total); cmp != 0 {
		return cmp > 0
	}
	return a.label < b.label
}

func groupTotals(rows []*transaction.Transaction, key func(*transaction.Transaction) string, less func(a, b groupedTotal) bool) Series {
	index := make(map[string]int)
	var groups []groupedTotal
	for _, row := range rows {
		label := key(row)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, groupedTotal{label: label})
		}
		groups[i].total = groups[i].total.Add(row.Amount)
	}

	sort.SliceStable(groups, func(i, j int) bool { return less(groups[i], groups[j]) })

	series := Series{
		Labels: make([]string, len(groups)),
		Values: make([]decimal.Decimal, len(groups)),
	}
	for i, group := range groups {
		series.Labels[i] = group.label
		series.Values[i] = group.total
	}
	return series
}

// ExportCSV renders every transaction of userID, newest first. A user with no
// transactions gets a single informational row after the header.
func (s *AnalyticsService) ExportCSV(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	var rows []*transaction.Transaction
	err := s.storage.Read(ctx, func(reader *storage.Reader) error {
		var err error
		rows, err = reader.Transactions.List(ctx, &transaction.TransactionFilter{
			UserID: userID,
			Order:  transaction.OrderDateDesc,
		})
		return err
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, exportFailedMessage, fmt.Errorf("list transactions: %w", err))
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, exportHeader)

	if len(rows) == 0 {
		records = append(records, []string{exportEmptyMessage})
	}
	for _, row := range rows {
		description := noDescription
		if row.Description != nil && *row.Description != "" {
			description = *row.Description
		}
		records = append(records, []string{
			row.TransactionDate.UTC().Format(dateLayout),
			row.Amount.StringFixed(2),
			row.Category,
			capitalize(string(row.TransactionType)),
			description,
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, exportFailedMessage, fmt.Errorf("write csv: %w", err))
	}
	return buf.Bytes(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
