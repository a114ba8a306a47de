package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mtilda/chipin/internal/models"
	"github.com/mtilda/chipin/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "chipin-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// seedUsers inserts users and returns their IDs in order.
func seedUsers(t *testing.T, store *SQLiteStore, names ...string) []string {
	t.Helper()

	ctx := context.Background()
	ids := make([]string, len(names))
	for i, name := range names {
		user := models.NewUser(name+"@example.com", name, "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", name, err)
		}
		ids[i] = user.ID
	}
	return ids
}

func TestSQLiteStore_GroupsAndTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ids := seedUsers(t, store, "alice", "bob", "carol")

	group := &models.Group{
		Name:      "Flatmates",
		MemberIDs: ids[:2],
		CreatedBy: ids[0],
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" || group.CreatedAt == 0 {
		t.Error("Expected group ID and CreatedAt to be generated")
	}

	t.Run("GetGroup returns members", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Flatmates" {
			t.Errorf("Name mismatch: got %s", got.Name)
		}
		if len(got.MemberIDs) != 2 {
			t.Errorf("Expected 2 members, got %d", len(got.MemberIDs))
		}
	})

	t.Run("AddGroupMembers is idempotent", func(t *testing.T) {
		if err := store.AddGroupMembers(ctx, group.ID, []string{ids[1], ids[2]}); err != nil {
			t.Fatalf("AddGroupMembers failed: %v", err)
		}
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.MemberIDs) != 3 {
			t.Errorf("Expected 3 members, got %d", len(got.MemberIDs))
		}
	})

	t.Run("ListGroupsForUser", func(t *testing.T) {
		groups, err := store.ListGroupsForUser(ctx, ids[0])
		if err != nil {
			t.Fatalf("ListGroupsForUser failed: %v", err)
		}
		if len(groups) != 1 {
			t.Errorf("Expected 1 group, got %d", len(groups))
		}
	})

	t.Run("Trips round-trip", func(t *testing.T) {
		trip := &models.Trip{GroupID: group.ID, Name: "Lisbon"}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if got.Name != "Lisbon" || got.GroupID != group.ID {
			t.Errorf("Trip mismatch: %+v", got)
		}

		trips, err := store.ListTripsByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListTripsByGroup failed: %v", err)
		}
		if len(trips) != 1 {
			t.Errorf("Expected 1 trip, got %d", len(trips))
		}
	})

	t.Run("GetGroup not found", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ids := seedUsers(t, store, "alice", "bob")

	group := &models.Group{Name: "Trip crew", MemberIDs: ids, CreatedBy: ids[0]}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	trip := &models.Trip{GroupID: group.ID, Name: "Porto"}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	expense := &models.Expense{
		TripID:      trip.ID,
		PayerID:     ids[0],
		Amount:      1000,
		Description: "Dinner",
		CreatedBy:   ids[0],
		Splits: []models.Split{
			{UserID: ids[0], Amount: 500},
			{UserID: ids[1], Amount: 500},
		},
	}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if expense.ID == "" || expense.CreatedAt == 0 {
		t.Error("Expected expense ID and CreatedAt to be generated")
	}

	t.Run("GetExpense retrieves splits", func(t *testing.T) {
		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if got.Amount != 1000 {
			t.Errorf("Amount mismatch: got %d", got.Amount)
		}
		if len(got.Splits) != 2 {
			t.Fatalf("Expected 2 splits, got %d", len(got.Splits))
		}
		if got.Splits[0].Amount+got.Splits[1].Amount != got.Amount {
			t.Error("Splits do not sum to expense amount")
		}
		if got.Deleted() {
			t.Error("New expense must not be deleted")
		}
	})

	t.Run("SoftDeleteExpense hides from list only", func(t *testing.T) {
		if err := store.SoftDeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("SoftDeleteExpense failed: %v", err)
		}

		expenses, err := store.ListExpensesByTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("ListExpensesByTrip failed: %v", err)
		}
		if len(expenses) != 0 {
			t.Errorf("Expected deleted expense hidden from list, got %d", len(expenses))
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Deleted() {
			t.Error("Expected DeletedAt to be set")
		}
	})

	t.Run("SoftDeleteExpense twice returns not found", func(t *testing.T) {
		err := store.SoftDeleteExpense(ctx, expense.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStore_Settlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ids := seedUsers(t, store, "alice", "bob")

	group := &models.Group{Name: "Trip crew", MemberIDs: ids, CreatedBy: ids[0]}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	trip := &models.Trip{GroupID: group.ID, Name: "Porto"}
	if err := store.CreateTrip(ctx, trip); err != nil {
		t.Fatalf("CreateTrip failed: %v", err)
	}

	settlement := &models.Settlement{
		TripID:     trip.ID,
		FromUserID: ids[1],
		ToUserID:   ids[0],
		Amount:     500,
		Note:       "dinner payback",
		CreatedBy:  ids[1],
	}
	if err := store.CreateSettlement(ctx, settlement); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	if settlement.Status != models.SettlementPending {
		t.Errorf("Expected default status pending, got %s", settlement.Status)
	}

	t.Run("GetSettlement round-trip", func(t *testing.T) {
		got, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if got.Amount != 500 || got.Note != "dinner payback" {
			t.Errorf("Settlement mismatch: %+v", got)
		}
	})

	t.Run("UpdateSettlementStatus", func(t *testing.T) {
		if err := store.UpdateSettlementStatus(ctx, settlement.ID, models.SettlementCompleted); err != nil {
			t.Fatalf("UpdateSettlementStatus failed: %v", err)
		}
		got, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if got.Status != models.SettlementCompleted {
			t.Errorf("Expected completed, got %s", got.Status)
		}
	})

	t.Run("SoftDeleteSettlement hides from list", func(t *testing.T) {
		if err := store.SoftDeleteSettlement(ctx, settlement.ID); err != nil {
			t.Fatalf("SoftDeleteSettlement failed: %v", err)
		}
		settlements, err := store.ListSettlementsByTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("ListSettlementsByTrip failed: %v", err)
		}
		if len(settlements) != 0 {
			t.Errorf("Expected deleted settlement hidden, got %d", len(settlements))
		}
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("dana@example.com", "Dana", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "dana@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetUserByEmail mismatch: %+v", byEmail)
	}

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown email, got %+v", missing)
	}

	users, err := store.GetUsersByIDs(ctx, []string{user.ID, "nonexistent"})
	if err != nil {
		t.Fatalf("GetUsersByIDs failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("Expected 1 user, got %d", len(users))
	}
}
