package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
)

// MemberSummary is the allocated vs. paid position of one user on a project.
type MemberSummary struct {
	User      domain.UserRef  `json:"user"`
	Allocated decimal.Decimal `json:"allocated"`
	Paid      decimal.Decimal `json:"paid"`
	Balance   decimal.Decimal `json:"balance"`
}

// MemberLedger is the payout-side view of a project.
type MemberLedger struct {
	Members        []MemberSummary `json:"members"`
	TotalAllocated decimal.Decimal `json:"total_allocated"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalBalance   decimal.Decimal `json:"total_balance"`
}

// Options tunes the member aggregation.
type Options struct {
	// IncludeUnpricedPayees gives users who received a completed payout but
	// have no pricing assignment their own bucket (allocated 0, negative
	// balance). When false such payout lines are dropped.
	IncludeUnpricedPayees bool
}

// Members builds one summary per distinct pricing user, in first-seen order.
//
// allocated sums fixed rates across all of the user's teams, paid sums the
// user's lines of COMPLETED payouts, and balance is allocated minus paid.
func Members(pricing []domain.PricingAssignment, payouts []domain.Payout, opts Options) MemberLedger {
	order := make([]string, 0, len(pricing))
	buckets := make(map[string]*MemberSummary, len(pricing))

	for i := range pricing {
		p := &pricing[i]
		b, ok := buckets[p.User.UserID]
		if !ok {
			b = &MemberSummary{User: p.User, Allocated: decimal.Zero, Paid: decimal.Zero}
			buckets[p.User.UserID] = b
			order = append(order, p.User.UserID)
		}
		b.Allocated = b.Allocated.Add(p.FixedRate)
	}

	for i := range payouts {
		if !payouts[i].IsCompleted() {
			continue
		}
		for _, line := range payouts[i].Members {
			b, ok := buckets[line.User.UserID]
			if !ok {
				if !opts.IncludeUnpricedPayees {
					continue
				}
				b = &MemberSummary{User: line.User, Allocated: decimal.Zero, Paid: decimal.Zero}
				buckets[line.User.UserID] = b
				order = append(order, line.User.UserID)
			}
			b.Paid = b.Paid.Add(line.Amount)
		}
	}

	result := MemberLedger{
		Members:        make([]MemberSummary, 0, len(order)),
		TotalAllocated: decimal.Zero,
		TotalPaid:      decimal.Zero,
		TotalBalance:   decimal.Zero,
	}
	for _, userID := range order {
		b := buckets[userID]
		b.Balance = b.Allocated.Sub(b.Paid)

		result.Members = append(result.Members, *b)
		result.TotalAllocated = result.TotalAllocated.Add(b.Allocated)
		result.TotalPaid = result.TotalPaid.Add(b.Paid)
		result.TotalBalance = result.TotalBalance.Add(b.Balance)
	}
	return result
}

// Find returns the summary for userID, if present.
func (l MemberLedger) Find(userID string) (MemberSummary, bool) {
	for _, m := range l.Members {
		if m.User.UserID == userID {
			return m, true
		}
	}
	return MemberSummary{}, false
}
