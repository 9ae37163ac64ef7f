package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/apperror"
	"github.com/carson-networks/finance-server/internal/handlers/v1/handlertest"
	"github.com/carson-networks/finance-server/internal/service"
)

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) CreateBudget(ctx context.Context, userID uuid.UUID, limit decimal.Decimal, month string) (*service.Budget, error) {
	args := m.Called(ctx, userID, limit, month)
	b, _ := args.Get(0).(*service.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) ListBudgets(ctx context.Context, userID uuid.UUID) ([]*service.Budget, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).([]*service.Budget)
	return b, args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockBudgetService) (humatest.TestAPI, *handlertest.Caller) {
	t.Helper()
	api, caller := handlertest.New(t)
	NewCreateBudgetHandler(svc).Register(api)
	NewListBudgetsHandler(svc).Register(api)
	return api, caller
}

func TestHTTP_CreateBudget_Success(t *testing.T) {
	svc := new(mockBudgetService)
	api, caller := newTestAPI(t, svc)

	svc.On("CreateBudget", mock.Anything, caller.ID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("500"))
	}), "2024-01").Return(&service.Budget{
		ID:        uuid.Must(uuid.NewV4()),
		Limit:     decimal.RequireFromString("500"),
		Month:     "2024-01",
		Spent:     decimal.RequireFromString("120.5"),
		Remaining: decimal.RequireFromString("379.5"),
	}, nil)

	resp := api.Post("/api/budgets/", caller.Auth, CreateBudgetBody{Limit: "500", Month: "2024-01"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Budget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "500.00", body.Limit)
	assert.Equal(t, "120.50", body.SpentAmount)
	assert.Equal(t, "379.50", body.RemainingAmount)
}

func TestHTTP_CreateBudget_NumericLimit(t *testing.T) {
	svc := new(mockBudgetService)
	api, caller := newTestAPI(t, svc)

	svc.On("CreateBudget", mock.Anything, caller.ID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(500))
	}), "2024-01").Return(&service.Budget{
		ID:        uuid.Must(uuid.NewV4()),
		Limit:     decimal.NewFromInt(500),
		Month:     "2024-01",
		Remaining: decimal.NewFromInt(500),
	}, nil)

	resp := api.Post("/api/budgets/", caller.Auth, map[string]any{"limit": 500, "month": "2024-01"})

	assert.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var body Budget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "500.00", body.Limit)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateBudget_Duplicate(t *testing.T) {
	svc := new(mockBudgetService)
	api, caller := newTestAPI(t, svc)
	svc.On("CreateBudget", mock.Anything, caller.ID, mock.Anything, "2024-01").
		Return(nil, apperror.Validation("a budget for 2024-01 already exists"))

	resp := api.Post("/api/budgets/", caller.Auth, CreateBudgetBody{Limit: "500", Month: "2024-01"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "already exists")
}

func TestHTTP_CreateBudget_BadLimit(t *testing.T) {
	svc := new(mockBudgetService)
	api, caller := newTestAPI(t, svc)

	resp := api.Post("/api/budgets/", caller.Auth, CreateBudgetBody{Limit: "lots", Month: "2024-01"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "CreateBudget", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_ListBudgets(t *testing.T) {
	svc := new(mockBudgetService)
	api, caller := newTestAPI(t, svc)
	svc.On("ListBudgets", mock.Anything, caller.ID).Return([]*service.Budget{
		{ID: uuid.Must(uuid.NewV4()), Limit: decimal.NewFromInt(300), Month: "2024-02", Spent: decimal.RequireFromString("350.25"), Remaining: decimal.RequireFromString("-50.25")},
		{ID: uuid.Must(uuid.NewV4()), Limit: decimal.NewFromInt(100), Month: "2024-01"},
	}, nil)

	resp := api.Get("/api/budgets/", caller.Auth)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body []Budget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "2024-02", body[0].Month)
	assert.Equal(t, "-50.25", body[0].RemainingAmount)
	assert.Equal(t, "0.00", body[1].SpentAmount)
}

func TestHTTP_ListBudgets_Unauthenticated(t *testing.T) {
	svc := new(mockBudgetService)
	api, _ := newTestAPI(t, svc)

	resp := api.Get("/api/budgets/")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
