package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtilda/chipin/internal/models"
)

func TestExpenseService_Create(t *testing.T) {
	store, tripID := seedTrip(t)
	svc := NewExpenseService(store)

	expense, err := svc.Create(context.Background(), CreateExpenseParams{
		TripID:      tripID,
		PayerID:     "alice",
		Amount:      900,
		Description: "Dinner",
		CreatedBy:   "alice",
		Splits: []models.Split{
			{UserID: "alice", Amount: 300},
			{UserID: "bob", Amount: 300},
			{UserID: "carol", Amount: 300},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, expense.ID)
	assert.Len(t, expense.Splits, 3)
}

func TestExpenseService_CreateEqualSplit(t *testing.T) {
	store, tripID := seedTrip(t)
	svc := NewExpenseService(store)

	expense, err := svc.Create(context.Background(), CreateExpenseParams{
		TripID:     tripID,
		PayerID:    "alice",
		Amount:     1000,
		CreatedBy:  "alice",
		SplitAmong: []string{"alice", "bob", "carol"},
	})
	require.NoError(t, err)

	var sum int64
	for _, split := range expense.Splits {
		sum += split.Amount
	}
	assert.Equal(t, int64(1000), sum, "equal split must preserve the total")
	assert.Equal(t, int64(334), expense.Splits[0].Amount)
	assert.Equal(t, int64(333), expense.Splits[1].Amount)
}

func TestExpenseService_CreateValidation(t *testing.T) {
	store, tripID := seedTrip(t)
	svc := NewExpenseService(store)
	ctx := context.Background()

	base := CreateExpenseParams{
		TripID:    tripID,
		PayerID:   "alice",
		Amount:    100,
		CreatedBy: "alice",
		Splits:    []models.Split{{UserID: "bob", Amount: 100}},
	}

	t.Run("non-positive amount", func(t *testing.T) {
		params := base
		params.Amount = 0
		_, err := svc.Create(ctx, params)
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	})

	t.Run("splits must sum to amount", func(t *testing.T) {
		params := base
		params.Splits = []models.Split{{UserID: "bob", Amount: 99}}
		_, err := svc.Create(ctx, params)
		assert.ErrorIs(t, err, ErrSplitMismatch)
	})

	t.Run("non-positive split", func(t *testing.T) {
		params := base
		params.Splits = []models.Split{
			{UserID: "bob", Amount: 100},
			{UserID: "carol", Amount: 0},
		}
		_, err := svc.Create(ctx, params)
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	})

	t.Run("duplicate split member", func(t *testing.T) {
		params := base
		params.Splits = []models.Split{
			{UserID: "bob", Amount: 50},
			{UserID: "bob", Amount: 50},
		}
		_, err := svc.Create(ctx, params)
		assert.ErrorIs(t, err, ErrDuplicateSplit)
	})

	t.Run("no splits", func(t *testing.T) {
		params := base
		params.Splits = nil
		_, err := svc.Create(ctx, params)
		assert.ErrorIs(t, err, ErrNoSplits)
	})

	t.Run("payer outside group", func(t *testing.T) {
		params := base
		params.PayerID = "mallory"
		_, err := svc.Create(ctx, params)
		assert.ErrorIs(t, err, ErrNotGroupMember)
	})

	t.Run("split member outside group", func(t *testing.T) {
		params := base
		params.Splits = []models.Split{{UserID: "mallory", Amount: 100}}
		_, err := svc.Create(ctx, params)
		assert.ErrorIs(t, err, ErrNotGroupMember)
	})
}

func TestSettlementService_Record(t *testing.T) {
	store, tripID := seedTrip(t)
	svc := NewSettlementService(store)
	ctx := context.Background()

	settlement, err := svc.Record(ctx, RecordSettlementParams{
		TripID:     tripID,
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     300,
		CreatedBy:  "bob",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SettlementPending, settlement.Status)

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := svc.Record(ctx, RecordSettlementParams{
			TripID: tripID, FromUserID: "bob", ToUserID: "alice", Amount: -5,
		})
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	})

	t.Run("self settlement", func(t *testing.T) {
		_, err := svc.Record(ctx, RecordSettlementParams{
			TripID: tripID, FromUserID: "bob", ToUserID: "bob", Amount: 100,
		})
		assert.ErrorIs(t, err, ErrSelfSettlement)
	})

	t.Run("outsider", func(t *testing.T) {
		_, err := svc.Record(ctx, RecordSettlementParams{
			TripID: tripID, FromUserID: "mallory", ToUserID: "alice", Amount: 100,
		})
		assert.ErrorIs(t, err, ErrNotGroupMember)
	})
}

func TestSettlementService_StatusLifecycle(t *testing.T) {
	store, tripID := seedTrip(t)
	svc := NewSettlementService(store)
	ctx := context.Background()

	settlement, err := svc.Record(ctx, RecordSettlementParams{
		TripID: tripID, FromUserID: "bob", ToUserID: "alice", Amount: 300, CreatedBy: "bob",
	})
	require.NoError(t, err)

	t.Run("pending cannot be confirmed directly", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, settlement.ID, models.SettlementConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, settlement.ID, models.SettlementStatus("paid"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("pending to completed to confirmed", func(t *testing.T) {
		updated, err := svc.UpdateStatus(ctx, settlement.ID, models.SettlementCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.SettlementCompleted, updated.Status)

		updated, err = svc.UpdateStatus(ctx, settlement.ID, models.SettlementConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.SettlementConfirmed, updated.Status)
	})

	t.Run("confirmed is terminal", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, settlement.ID, models.SettlementPending)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}
