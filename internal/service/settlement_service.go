package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtilda/chipin/internal/models"
	"github.com/mtilda/chipin/internal/storage"
)

// SettlementService manages payments recorded between members. Settlements
// start pending and only count toward balances once completed or confirmed.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a SettlementService with the given storage
// backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// RecordSettlementParams describes a new settlement.
type RecordSettlementParams struct {
	TripID     string
	FromUserID string
	ToUserID   string
	Amount     int64
	Note       string
	CreatedBy  string
}

// Record validates and persists a new settlement in pending status.
func (s *SettlementService) Record(ctx context.Context, params RecordSettlementParams) (*models.Settlement, error) {
	if params.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if params.FromUserID == params.ToUserID {
		return nil, ErrSelfSettlement
	}

	trip, err := s.store.GetTrip(ctx, params.TripID)
	if err != nil {
		return nil, err
	}
	group, err := s.store.GetGroup(ctx, trip.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(params.FromUserID) || !group.HasMember(params.ToUserID) {
		return nil, ErrNotGroupMember
	}

	settlement := &models.Settlement{
		TripID:     params.TripID,
		FromUserID: params.FromUserID,
		ToUserID:   params.ToUserID,
		Amount:     params.Amount,
		Status:     models.SettlementPending,
		Note:       params.Note,
		CreatedBy:  params.CreatedBy,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, err
	}

	slog.Info("settlement recorded",
		"settlement_id", settlement.ID,
		"trip_id", settlement.TripID,
		"from", settlement.FromUserID,
		"to", settlement.ToUserID,
		"amount", settlement.Amount,
	)
	return settlement, nil
}

// UpdateStatus moves a settlement through its lifecycle
// (pending -> completed -> confirmed, or pending -> rejected).
func (s *SettlementService) UpdateStatus(ctx context.Context, settlementID string, next models.SettlementStatus) (*models.Settlement, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}

	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Deleted() {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	if !settlement.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, settlement.Status, next)
	}

	if err := s.store.UpdateSettlementStatus(ctx, settlementID, next); err != nil {
		return nil, err
	}
	settlement.Status = next

	slog.Info("settlement status updated",
		"settlement_id", settlementID,
		"status", next,
	)
	return settlement, nil
}

// List returns the trip's live settlements, newest first.
func (s *SettlementService) List(ctx context.Context, tripID string) ([]*models.Settlement, error) {
	if _, err := s.store.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByTrip(ctx, tripID)
}

// Delete soft-deletes a settlement.
func (s *SettlementService) Delete(ctx context.Context, settlementID string) error {
	if err := s.store.SoftDeleteSettlement(ctx, settlementID); err != nil {
		return err
	}
	slog.Info("settlement deleted", "settlement_id", settlementID)
	return nil
}
