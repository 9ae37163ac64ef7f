package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

type ListBudgetsOutput struct {
	Body []Budget
}

type budgetLister interface {
	ListBudgets(ctx context.Context, userID uuid.UUID) ([]*service.Budget, error)
}

// ListBudgetsHandler handles GET /api/budgets/.
type ListBudgetsHandler struct {
	BudgetService budgetLister
}

func NewListBudgetsHandler(svc budgetLister) *ListBudgetsHandler {
	return &ListBudgetsHandler{BudgetService: svc}
}

func (h *ListBudgetsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/api/budgets/",
		Summary:     "List budgets",
		Description: "Returns the caller's budgets, newest month first, with spent and remaining amounts.",
		Tags:        []string{"Budgets"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *ListBudgetsHandler) handle(ctx context.Context, _ *struct{}) (*ListBudgetsOutput, error) {
	logData := logging.GetLogData(ctx)
	userID, err := httperr.Caller(ctx)
	if err != nil {
		return nil, err
	}

	var budgets []*service.Budget
	err = logging.Time(logData, "listBudgetsMs", func() error {
		var err error
		budgets, err = h.BudgetService.ListBudgets(ctx, userID)
		return err
	})
	if err != nil {
		return nil, httperr.From(ctx, "list-budgets", err)
	}

	out := make([]Budget, len(budgets))
	for i, b := range budgets {
		out[i] = budgetResponse(b)
	}
	return &ListBudgetsOutput{Body: out}, nil
}
