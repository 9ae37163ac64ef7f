package analytics

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

type SpendingAnalysisInput struct {
	StartDate       string `query:"start_date" doc:"YYYY-MM-DD lower bound"`
	EndDate         string `query:"end_date" doc:"YYYY-MM-DD upper bound, inclusive"`
	Category        string `query:"category" doc:"Category to analyse; 'all' or empty for every category"`
	TransactionType string `query:"transaction_type" doc:"expense (default), income or all"`
}

// ChartSeries is a chart-ready list of labels with matching decimal values.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []string `json:"values"`
}

type SpendingAnalysisResponse struct {
	MonthlyTrend       ChartSeries               `json:"monthly_trend" doc:"Totals per YYYY-MM, oldest first"`
	CategoryBreakdown  ChartSeries               `json:"category_breakdown" doc:"Totals per category, largest first"`
	RecentTransactions []transaction.Transaction `json:"recent_transactions" doc:"Up to five most recent matching transactions"`
}

type SpendingAnalysisOutput struct {
	Body SpendingAnalysisResponse
}

type spendingAnalyzer interface {
	SpendingAnalysis(ctx context.Context, userID uuid.UUID, filter service.SpendingFilter) (*service.SpendingAnalysis, error)
}

// SpendingAnalysisHandler handles GET /api/spending-analysis/.
type SpendingAnalysisHandler struct {
	AnalyticsService spendingAnalyzer
}

func NewSpendingAnalysisHandler(svc spendingAnalyzer) *SpendingAnalysisHandler {
	return &SpendingAnalysisHandler{AnalyticsService: svc}
}

func (h *SpendingAnalysisHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "spending-analysis",
		Method:      http.MethodGet,
		Path:        "/api/spending-analysis/",
		Summary:     "Spending analysis",
		Description: "Monthly trend, category breakdown and recent transactions for the matching transactions.",
		Tags:        []string{"Analytics"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *SpendingAnalysisHandler) handle(ctx context.Context, input *SpendingAnalysisInput) (*SpendingAnalysisOutput, error) {
	logData := logging.GetLogData(ctx)
	userID, err := httperr.Caller(ctx)
	if err != nil {
		return nil, err
	}

	var analysis *service.SpendingAnalysis
	err = logging.Time(logData, "spendingAnalysisMs", func() error {
		var err error
		analysis, err = h.AnalyticsService.SpendingAnalysis(ctx, userID, service.SpendingFilter{
			StartDate:       input.StartDate,
			EndDate:         input.EndDate,
			Category:        input.Category,
			TransactionType: input.TransactionType,
		})
		return err
	})
	if err != nil {
		return nil, httperr.From(ctx, "spending-analysis", err)
	}

	return &SpendingAnalysisOutput{Body: SpendingAnalysisResponse{
		MonthlyTrend:       chartSeries(analysis.MonthlyTrend),
		CategoryBreakdown:  chartSeries(analysis.CategoryBreakdown),
		RecentTransactions: transaction.FromServiceList(analysis.RecentTransactions),
	}}, nil
}

func chartSeries(s service.Series) ChartSeries {
	out := ChartSeries{
		Labels: append([]string{}, s.Labels...),
		Values: make([]string, len(s.Values)),
	}
	for i, v := range s.Values {
		out.Values[i] = v.StringFixed(2)
	}
	return out
}
