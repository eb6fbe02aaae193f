package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/aidar/payteams/internal/domain"
)

// TeamRate is one priced user inside a team breakdown.
type TeamRate struct {
	User      domain.UserRef  `json:"user"`
	FixedRate decimal.Decimal `json:"fixed_rate"`
	Currency  string          `json:"currency"`
}

// TeamBreakdown is the pricing of a single team on a project.
type TeamBreakdown struct {
	TeamID   string          `json:"team_id"`
	TeamName string          `json:"team_name"`
	Total    decimal.Decimal `json:"total"`
	Members  []TeamRate      `json:"members"`
}

// ByTeam groups pricing rows by team in first-seen order. A user priced on
// two teams appears under both; nothing is netted across teams.
func ByTeam(pricing []domain.PricingAssignment) []TeamBreakdown {
	index := make(map[string]int)
	groups := make([]TeamBreakdown, 0)

	for i := range pricing {
		p := &pricing[i]
		idx, ok := index[p.TeamID]
		if !ok {
			idx = len(groups)
			index[p.TeamID] = idx
			groups = append(groups, TeamBreakdown{
				TeamID:   p.TeamID,
				TeamName: p.TeamName,
				Total:    decimal.Zero,
				Members:  []TeamRate{},
			})
		}

		g := &groups[idx]
		g.Total = g.Total.Add(p.FixedRate)
		g.Members = append(g.Members, TeamRate{
			User:      p.User,
			FixedRate: p.FixedRate,
			Currency:  p.Currency,
		})
	}
	return groups
}
