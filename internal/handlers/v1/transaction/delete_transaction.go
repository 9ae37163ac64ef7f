package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

type DeleteTransactionOutput struct {
	Status int
}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, userID uuid.UUID, id string) error
}

// DeleteTransactionHandler handles DELETE /api/transactions/{id}/.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/api/transactions/{id}/",
		Summary:     "Delete transaction",
		Description: "Deletes one of the caller's transactions.",
		Tags:        []string{"Transactions"},
		Security:    auth.BearerSecurity,
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	userID, err := httperr.Caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.DeleteTransaction(ctx, userID, input.ID); err != nil {
		return nil, httperr.From(ctx, "delete-transaction", err)
	}

	return &DeleteTransactionOutput{Status: http.StatusNoContent}, nil
}
