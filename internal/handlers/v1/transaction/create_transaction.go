package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/handlers/v1/money"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction. The
// owner and date are set by the server.
type CreateTransactionBody struct {
	_               struct{}     `json:"-" additionalProperties:"true"`
	Amount          money.Amount `json:"amount" doc:"Positive decimal amount, at most two fraction digits"`
	Category        string       `json:"category" minLength:"1" maxLength:"100"`
	Description     *string      `json:"description,omitempty"`
	TransactionType string       `json:"transaction_type" enum:"income,expense"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, create service.TransactionCreate) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /api/transactions/.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/api/transactions/",
		Summary:     "Create transaction",
		Description: "Records an income or expense for the caller, dated now.",
		Tags:        []string{"Transactions"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

// parseCreateTransactionInput parses the API input into the service request.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionCreate, error) {
	amount, err := input.Body.Amount.Decimal()
	if err != nil {
		return service.TransactionCreate{}, huma.Error400BadRequest("amount must be a decimal number")
	}

	return service.TransactionCreate{
		Amount:          amount,
		Category:        input.Body.Category,
		Description:     input.Body.Description,
		TransactionType: input.Body.TransactionType,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	userID, err := httperr.Caller(ctx)
	if err != nil {
		return nil, err
	}
	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var created *service.Transaction
	err = logging.Time(logging.GetLogData(ctx), "createTransactionMs", func() error {
		var err error
		created, err = h.TransactionService.CreateTransaction(ctx, userID, create)
		return err
	})
	if err != nil {
		return nil, httperr.From(ctx, "create-transaction", err)
	}

	return &CreateTransactionOutput{Status: http.StatusCreated, Body: FromService(created)}, nil
}
