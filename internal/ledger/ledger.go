// Package ledger reconciles a project's money flows from already-fetched records.
//
// Two independent views are computed here: the client side (payins against the
// project budget) and the member side (payouts against pricing assignments).
// Both are pure functions: they never mutate their inputs and never fail.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
)

// ClientLedger is the client-side view of a project budget.
type ClientLedger struct {
	TotalReceived decimal.Decimal `json:"total_received"`
	// RemainingBudget is nil when the project does not track a budget.
	// Negative values mean the project is over budget.
	RemainingBudget *decimal.Decimal `json:"remaining_budget,omitempty"`
}

// ClientSide sums RECEIVED payins and subtracts them from the budget, if any.
// Pending and cancelled payins are ignored.
func ClientSide(budget *decimal.Decimal, payins []domain.Payin) ClientLedger {
	received := decimal.Zero
	for i := range payins {
		if payins[i].IsReceived() {
			received = received.Add(payins[i].Amount)
		}
	}

	result := ClientLedger{TotalReceived: received}
	if budget != nil {
		remaining := budget.Sub(received)
		result.RemainingBudget = &remaining
	}
	return result
}
