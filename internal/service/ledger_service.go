package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mtilda/chipin/internal/ledger"
	"github.com/mtilda/chipin/internal/metrics"
	"github.com/mtilda/chipin/internal/models"
	"github.com/mtilda/chipin/internal/storage"
)

// LedgerService resolves a request scope (one trip, or every trip under a
// group) into record sets, runs the ledger engine over them, and enriches
// the result for display. Each call recomputes from the full record set;
// nothing is cached between requests.
type LedgerService struct {
	store storage.Store
	dust  int64
}

// NewLedgerService creates a LedgerService using the default dust threshold.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store, dust: ledger.DefaultDustThreshold}
}

// BalanceSheet is the engine output for one scope: net positions and the
// suggested settling transfers.
type BalanceSheet struct {
	Balances  ledger.Balances
	Transfers []ledger.Transfer
}

// MemberBalance annotates one roster entry with its net position.
type MemberBalance struct {
	UserID      string
	DisplayName string
	Balance     int64
}

// GroupBalanceSheet extends BalanceSheet with the group roster and the
// total spent across all included expenses.
type GroupBalanceSheet struct {
	BalanceSheet
	TotalSpent int64
	Members    []MemberBalance
}

// TripBalances computes balances and suggested transfers for one trip.
func (s *LedgerService) TripBalances(ctx context.Context, tripID string) (*BalanceSheet, error) {
	if _, err := s.store.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	sheet, _, err := s.compute(expenses, settlements)
	if err != nil {
		return nil, fmt.Errorf("trip %s: %w", tripID, err)
	}

	metrics.BalanceComputations.WithLabelValues("trip").Inc()
	slog.Debug("trip balances computed",
		"trip_id", tripID,
		"expenses", len(expenses),
		"transfers", len(sheet.Transfers),
	)
	return sheet, nil
}

// GroupBalances computes a single aggregate balance across every trip
// under the group. Trip-scoped settlements are included in the aggregate:
// balances are additive, so the union equals the sum of per-trip views,
// and excluding paid settlements would resurrect already-cleared debt.
func (s *LedgerService) GroupBalances(ctx context.Context, groupID string) (*GroupBalanceSheet, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	trips, err := s.store.ListTripsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var expenses []*models.Expense
	var settlements []*models.Settlement
	for _, trip := range trips {
		tripExpenses, err := s.store.ListExpensesByTrip(ctx, trip.ID)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, tripExpenses...)

		tripSettlements, err := s.store.ListSettlementsByTrip(ctx, trip.ID)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, tripSettlements...)
	}

	sheet, totalSpent, err := s.compute(expenses, settlements)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", groupID, err)
	}

	members, err := s.annotateRoster(ctx, group, sheet.Balances)
	if err != nil {
		return nil, err
	}

	metrics.BalanceComputations.WithLabelValues("group").Inc()
	slog.Debug("group balances computed",
		"group_id", groupID,
		"trips", len(trips),
		"expenses", len(expenses),
		"transfers", len(sheet.Transfers),
	)
	return &GroupBalanceSheet{
		BalanceSheet: *sheet,
		TotalSpent:   totalSpent,
		Members:      members,
	}, nil
}

// compute converts models into engine inputs, dropping settlements that
// never happened, then aggregates and nets. Returns the sheet and the sum
// of included expense amounts.
func (s *LedgerService) compute(expenses []*models.Expense, settlements []*models.Settlement) (*BalanceSheet, int64, error) {
	ledgerExpenses := make([]ledger.Expense, 0, len(expenses))
	var totalSpent int64
	for _, e := range expenses {
		if e.Deleted() {
			continue
		}

		splits := make([]ledger.Split, len(e.Splits))
		for i, sp := range e.Splits {
			splits[i] = ledger.Split{UserID: sp.UserID, Amount: sp.Amount}
		}
		ledgerExpenses = append(ledgerExpenses, ledger.Expense{
			PayerID: e.PayerID,
			Amount:  e.Amount,
			Splits:  splits,
		})

		sum := totalSpent + e.Amount
		if sum < totalSpent {
			return nil, 0, ledger.ErrOverflow
		}
		totalSpent = sum
	}

	ledgerSettlements := make([]ledger.Settlement, 0, len(settlements))
	for _, st := range settlements {
		if st.Deleted() || !st.Status.CountsTowardBalance() {
			continue
		}
		ledgerSettlements = append(ledgerSettlements, ledger.Settlement{
			FromUserID: st.FromUserID,
			ToUserID:   st.ToUserID,
			Amount:     st.Amount,
		})
	}

	balances, err := ledger.Aggregate(ledgerExpenses, ledgerSettlements)
	if err != nil {
		return nil, 0, err
	}

	transfers := ledger.Net(balances, s.dust)
	metrics.TransfersSuggested.Observe(float64(len(transfers)))

	return &BalanceSheet{Balances: balances, Transfers: transfers}, totalSpent, nil
}

// annotateRoster joins the group member list with computed balances.
// Members with no activity appear with a zero balance.
func (s *LedgerService) annotateRoster(ctx context.Context, group *models.Group, balances ledger.Balances) ([]MemberBalance, error) {
	users, err := s.store.GetUsersByIDs(ctx, group.MemberIDs)
	if err != nil {
		return nil, err
	}

	members := make([]MemberBalance, 0, len(group.MemberIDs))
	for _, id := range group.MemberIDs {
		mb := MemberBalance{UserID: id, Balance: balances[id]}
		if user, ok := users[id]; ok {
			mb.DisplayName = user.DisplayName
		}
		members = append(members, mb)
	}

	sort.Slice(members, func(i, j int) bool {
		return members[i].DisplayName < members[j].DisplayName
	})
	return members, nil
}
