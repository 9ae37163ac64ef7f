package budget

import (
	"time"

	"github.com/carson-networks/finance-server/internal/service"
)

// Budget is the API response model for a budget with its derived amounts.
type Budget struct {
	ID              string `json:"id" doc:"Budget UUID"`
	Limit           string `json:"limit"`
	Month           string `json:"month" doc:"YYYY-MM"`
	SpentAmount     string `json:"spent_amount" doc:"Sum of the month's expenses, computed on read"`
	RemainingAmount string `json:"remaining_amount" doc:"limit - spent_amount, negative when overspent"`
	CreatedAt       string `json:"created_at"`
}

func budgetResponse(b *service.Budget) Budget {
	return Budget{
		ID:              b.ID.String(),
		Limit:           b.Limit.StringFixed(2),
		Month:           b.Month,
		SpentAmount:     b.Spent.StringFixed(2),
		RemainingAmount: b.Remaining.StringFixed(2),
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
