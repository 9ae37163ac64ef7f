package analytics

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/service"
)

type MonthlySummaryInput struct {
	Month string `query:"month" doc:"YYYY-MM. Required."`
}

type MonthlySummaryResponse struct {
	Month      string `json:"month"`
	Income     string `json:"income"`
	Expenses   string `json:"expenses"`
	NetBalance string `json:"net_balance" doc:"income - expenses"`
}

type MonthlySummaryOutput struct {
	Body MonthlySummaryResponse
}

type monthlySummarizer interface {
	MonthlySummary(ctx context.Context, userID uuid.UUID, month string) (*service.MonthlySummary, error)
}

// MonthlySummaryHandler handles GET /api/monthly-summary/.
type MonthlySummaryHandler struct {
	AnalyticsService monthlySummarizer
}

func NewMonthlySummaryHandler(svc monthlySummarizer) *MonthlySummaryHandler {
	return &MonthlySummaryHandler{AnalyticsService: svc}
}

func (h *MonthlySummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "monthly-summary",
		Method:      http.MethodGet,
		Path:        "/api/monthly-summary/",
		Summary:     "Monthly summary",
		Description: "Totals the caller's income and expenses for one month.",
		Tags:        []string{"Analytics"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *MonthlySummaryHandler) handle(ctx context.Context, input *MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	userID, err := httperr.Caller(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := h.AnalyticsService.MonthlySummary(ctx, userID, input.Month)
	if err != nil {
		return nil, httperr.From(ctx, "monthly-summary", err)
	}

	return &MonthlySummaryOutput{Body: MonthlySummaryResponse{
		Month:      summary.Month,
		Income:     summary.Income.StringFixed(2),
		Expenses:   summary.Expenses.StringFixed(2),
		NetBalance: summary.NetBalance.StringFixed(2),
	}}, nil
}
