package transaction

import (
	"time"

	"github.com/carson-networks/finance-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string  `json:"id" doc:"Transaction UUID"`
	Amount          string  `json:"amount" doc:"Decimal amount with two fraction digits"`
	Category        string  `json:"category"`
	Description     *string `json:"description" nullable:"true" doc:"Free-text note, null when absent"`
	TransactionDate string  `json:"transaction_date" doc:"RFC3339 time the transaction was recorded"`
	TransactionType string  `json:"transaction_type" enum:"income,expense"`
}

// FromService converts a service transaction into the response model.
func FromService(tx *service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID.String(),
		Amount:          tx.Amount.StringFixed(2),
		Category:        tx.Category,
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate.UTC().Format(time.RFC3339),
		TransactionType: string(tx.TransactionType),
	}
}

// FromServiceList converts a slice, never returning nil so it encodes as [].
func FromServiceList(txs []*service.Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = FromService(tx)
	}
	return out
}
