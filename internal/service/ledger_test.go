package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/ledger"
)

// ledgerStore seeds project p1 (budget 1000) with t1 assigned and priced:
// u1 400, u2 600.
func ledgerStore() *fakeStore {
	store := seededStore()
	p := store.addProject("p1", "u1")
	p.Budget = amount("1000")
	store.projectTeams["p1"] = []string{"t1"}

	u1, u2 := store.users["u1"].Ref(), store.users["u2"].Ref()
	store.pricing = []domain.PricingAssignment{
		{ProjectID: "p1", TeamID: "t1", TeamName: "team t1", User: u1, FixedRate: decimal.NewFromInt(400), Currency: "USD"},
		{ProjectID: "p1", TeamID: "t1", TeamName: "team t1", User: u2, FixedRate: decimal.NewFromInt(600), Currency: "USD"},
	}
	store.payins = []domain.Payin{
		{PayinID: "in1", ProjectID: "p1", Amount: decimal.NewFromInt(300), Status: domain.PayinReceived},
		{PayinID: "in2", ProjectID: "p1", Amount: decimal.NewFromInt(200), Status: domain.PayinPending},
	}
	store.payouts = []domain.Payout{
		{
			PayoutID: "out1", ProjectID: "p1", Status: domain.PayoutCompleted, TotalAmount: decimal.NewFromInt(250),
			Members: []domain.PayoutMember{{User: u2, Amount: decimal.NewFromInt(250)}},
		},
		{
			PayoutID: "out2", ProjectID: "p1", Status: domain.PayoutPending, TotalAmount: decimal.NewFromInt(100),
			Members: []domain.PayoutMember{{User: u1, Amount: decimal.NewFromInt(100)}},
		},
	}
	return store
}

func newLedger(store *fakeStore, opts ledger.Options) *LedgerService {
	return NewLedgerService(newProjects(store), store.pricingRepo(), store.payinRepo(), store.payoutRepo(), opts)
}

func TestLedgerService_GetLedger(t *testing.T) {
	store := ledgerStore()
	svc := newLedger(store, ledger.Options{})

	l, err := svc.GetLedger(context.Background(), "u1", "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", l.ProjectID)
	assert.Equal(t, "USD", l.Currency)
	assert.Equal(t, "300", l.Client.TotalReceived.String())
	require.NotNil(t, l.Client.RemainingBudget)
	assert.Equal(t, "700", l.Client.RemainingBudget.String())

	require.Len(t, l.Members.Members, 2)
	assert.Equal(t, "u1", l.Members.Members[0].User.UserID)
	assert.Equal(t, "0", l.Members.Members[0].Paid.String(), "pending payouts are not counted")
	u2, ok := l.Members.Find("u2")
	require.True(t, ok)
	assert.Equal(t, "350", u2.Balance.String())
	assert.Equal(t, "1000", l.Members.TotalAllocated.String())
	assert.Equal(t, "250", l.Members.TotalPaid.String())
	assert.Equal(t, "750", l.Members.TotalBalance.String())

	require.Len(t, l.Teams, 1)
	assert.Equal(t, "1000", l.Teams[0].Total.String())
}

func TestLedgerService_ReflectsStatusChanges(t *testing.T) {
	ctx := context.Background()
	store := ledgerStore()
	svc := newLedger(store, ledger.Options{})
	payouts := NewPayoutService(newProjects(store), store.payoutRepo(), discardLogger())

	_, err := payouts.UpdatePayoutStatus(ctx, "u1", "p1", "out2", domain.PayoutCompleted)
	require.NoError(t, err)

	l, err := svc.GetLedger(ctx, "u2", "p1")
	require.NoError(t, err)
	assert.Equal(t, "350", l.Members.TotalPaid.String())

	u1, ok := l.Members.Find("u1")
	require.True(t, ok)
	assert.Equal(t, "300", u1.Balance.String())
}

func TestLedgerService_UnpricedPayees(t *testing.T) {
	store := ledgerStore()
	store.payouts = append(store.payouts, domain.Payout{
		PayoutID: "out3", ProjectID: "p1", Status: domain.PayoutCompleted, TotalAmount: decimal.NewFromInt(50),
		Members: []domain.PayoutMember{{User: store.users["u3"].Ref(), Amount: decimal.NewFromInt(50)}},
	})

	dropped, err := newLedger(store, ledger.Options{}).GetLedger(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.Len(t, dropped.Members.Members, 2)
	assert.Equal(t, "250", dropped.Members.TotalPaid.String())

	kept, err := newLedger(store, ledger.Options{IncludeUnpricedPayees: true}).GetLedger(context.Background(), "u1", "p1")
	require.NoError(t, err)
	require.Len(t, kept.Members.Members, 3)
	u3, ok := kept.Members.Find("u3")
	require.True(t, ok)
	assert.Equal(t, "-50", u3.Balance.String())
}

func TestLedgerService_NoBudget(t *testing.T) {
	store := ledgerStore()
	store.projects["p1"].Budget = nil

	l, err := newLedger(store, ledger.Options{}).GetLedger(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.Nil(t, l.Client.RemainingBudget)
	assert.Equal(t, "300", l.Client.TotalReceived.String())
}

func TestLedgerService_Errors(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name   string
		setup  func(*fakeStore)
		userID string
		want   error
	}{
		{name: "outsider", setup: func(*fakeStore) {}, userID: "u3", want: domain.ErrProjectNotFound},
		{name: "pricing fetch fails", setup: func(s *fakeStore) { s.failPricing = boom }, userID: "u1", want: boom},
		{name: "payins fetch fails", setup: func(s *fakeStore) { s.failPayins = boom }, userID: "u1", want: boom},
		{name: "payouts fetch fails", setup: func(s *fakeStore) { s.failPayouts = boom }, userID: "u1", want: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := ledgerStore()
			tt.setup(store)

			l, err := newLedger(store, ledger.Options{}).GetLedger(context.Background(), tt.userID, "p1")

			assert.Nil(t, l)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
