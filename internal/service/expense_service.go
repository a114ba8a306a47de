package service

import (
	"context"
	"log/slog"

	"github.com/mtilda/chipin/internal/models"
	"github.com/mtilda/chipin/internal/money"
	"github.com/mtilda/chipin/internal/storage"
)

// ExpenseService manages shared expenses. It owns the data-integrity
// validation the ledger engine relies on: positive amounts, splits summing
// to the expense amount, and every referenced user belonging to the
// trip's group.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseParams describes a new expense. Either Splits or SplitAmong
// must be set: explicit shares, or a member list to divide Amount equally
// across (remainder cents go to the earliest members).
type CreateExpenseParams struct {
	TripID      string
	PayerID     string
	Amount      int64
	Description string
	CreatedBy   string
	Splits      []models.Split
	SplitAmong  []string
}

// Create validates and persists a new expense.
func (s *ExpenseService) Create(ctx context.Context, params CreateExpenseParams) (*models.Expense, error) {
	if params.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	trip, err := s.store.GetTrip(ctx, params.TripID)
	if err != nil {
		return nil, err
	}
	group, err := s.store.GetGroup(ctx, trip.GroupID)
	if err != nil {
		return nil, err
	}

	splits := params.Splits
	if len(splits) == 0 && len(params.SplitAmong) > 0 {
		shares := money.SplitEqually(params.Amount, len(params.SplitAmong))
		splits = make([]models.Split, len(params.SplitAmong))
		for i, userID := range params.SplitAmong {
			splits[i] = models.Split{UserID: userID, Amount: shares[i]}
		}
	}
	if len(splits) == 0 {
		return nil, ErrNoSplits
	}

	if err := validateSplits(splits, params.Amount); err != nil {
		return nil, err
	}
	if !group.HasMember(params.PayerID) || !group.HasMember(params.CreatedBy) {
		return nil, ErrNotGroupMember
	}
	for _, split := range splits {
		if !group.HasMember(split.UserID) {
			return nil, ErrNotGroupMember
		}
	}

	expense := &models.Expense{
		TripID:      params.TripID,
		PayerID:     params.PayerID,
		Amount:      params.Amount,
		Description: params.Description,
		CreatedBy:   params.CreatedBy,
		Splits:      splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("expense created",
		"expense_id", expense.ID,
		"trip_id", expense.TripID,
		"payer_id", expense.PayerID,
		"amount", expense.Amount,
		"splits", len(expense.Splits),
	)
	return expense, nil
}

// List returns the trip's live expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, tripID string) ([]*models.Expense, error) {
	if _, err := s.store.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByTrip(ctx, tripID)
}

// Delete soft-deletes an expense; the record stays in storage but no
// longer affects balances.
func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	if err := s.store.SoftDeleteExpense(ctx, expenseID); err != nil {
		return err
	}
	slog.Info("expense deleted", "expense_id", expenseID)
	return nil
}

// validateSplits enforces the sum invariant the ledger assumes.
func validateSplits(splits []models.Split, amount int64) error {
	seen := make(map[string]bool, len(splits))
	var sum int64
	for _, split := range splits {
		if split.Amount <= 0 {
			return ErrNonPositiveAmount
		}
		if seen[split.UserID] {
			return ErrDuplicateSplit
		}
		seen[split.UserID] = true
		sum += split.Amount
	}
	if sum != amount {
		return ErrSplitMismatch
	}
	return nil
}
