package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/handlers/v1/money"
	"github.com/carson-networks/finance-server/internal/service"
)

type CreateBudgetBody struct {
	Limit money.Amount `json:"limit" doc:"Positive decimal limit, at most two fraction digits"`
	Month string       `json:"month" doc:"YYYY-MM; one budget per month"`
}

type CreateBudgetInput struct {
	Body CreateBudgetBody
}

type CreateBudgetOutput struct {
	Status int
	Body   Budget
}

type budgetCreator interface {
	CreateBudget(ctx context.Context, userID uuid.UUID, limit decimal.Decimal, month string) (*service.Budget, error)
}

// CreateBudgetHandler handles POST /api/budgets/.
type CreateBudgetHandler struct {
	BudgetService budgetCreator
}

func NewCreateBudgetHandler(svc budgetCreator) *CreateBudgetHandler {
	return &CreateBudgetHandler{BudgetService: svc}
}

func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-budget",
		Method:      http.MethodPost,
		Path:        "/api/budgets/",
		Summary:     "Create budget",
		Tags:        []string{"Budgets"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	userID, err := httperr.Caller(ctx)
	if err != nil {
		return nil, err
	}
	limit, err := input.Body.Limit.Decimal()
	if err != nil {
		return nil, huma.Error400BadRequest("limit must be a decimal number")
	}

	created, err := h.BudgetService.CreateBudget(ctx, userID, limit, input.Body.Month)
	if err != nil {
		return nil, httperr.From(ctx, "create-budget", err)
	}

	return &CreateBudgetOutput{Status: http.StatusCreated, Body: budgetResponse(created)}, nil
}
