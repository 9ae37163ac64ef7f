package transaction

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

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	TransactionType string `query:"transaction_type" enum:"income,expense" doc:"Only this type"`
	Category        string `query:"category" doc:"Exact category match"`
	StartDate       string `query:"start_date" doc:"YYYY-MM-DD, applied together with end_date"`
	EndDate         string `query:"end_date" doc:"YYYY-MM-DD inclusive, applied together with start_date"`
	Ordering        string `query:"ordering" enum:"transaction_date,-transaction_date,amount,-amount" doc:"Sort field, '-' for descending. Defaults to -transaction_date"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body []Transaction
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, filter service.TransactionListFilter) ([]*service.Transaction, error)
}

// ListTransactionsHandler handles GET /api/transactions/.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/api/transactions/",
		Summary:     "List transactions",
		Description: "Returns the caller's transactions, optionally filtered and ordered.",
		Tags:        []string{"Transactions"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	userID, err := httperr.Caller(ctx)
	if err != nil {
		return nil, err
	}

	var transactions []*service.Transaction
	err = logging.Time(logData, "listTransactionsMs", func() error {
		var err error
		transactions, err = h.TransactionService.ListTransactions(ctx, userID, service.TransactionListFilter{
			TransactionType: input.TransactionType,
			Category:        input.Category,
			StartDate:       input.StartDate,
			EndDate:         input.EndDate,
			Ordering:        input.Ordering,
		})
		return err
	})
	if err != nil {
		return nil, httperr.From(ctx, "list-transactions", err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	return &ListTransactionsOutput{Body: FromServiceList(transactions)}, nil
}
