package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mtilda/chipin/internal/models"
	"github.com/mtilda/chipin/internal/storage"
)

// fakeStore is an in-memory storage.Store for service tests.
type fakeStore struct {
	users       map[string]*models.User
	groups      map[string]*models.Group
	trips       map[string]*models.Trip
	expenses    map[string]*models.Expense
	settlements map[string]*models.Settlement
}

var _ storage.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[string]*models.User),
		groups:      make(map[string]*models.Group),
		trips:       make(map[string]*models.Trip),
		expenses:    make(map[string]*models.Expense),
		settlements: make(map[string]*models.Settlement),
	}
}

// addUser registers a user with the given ID for readable test data.
func (f *fakeStore) addUser(id string) {
	f.users[id] = &models.User{ID: id, Email: id + "@example.com", DisplayName: id}
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetUsersByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeStore) CreateGroup(_ context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	f.groups[group.ID] = group
	return nil
}

func (f *fakeStore) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	group, ok := f.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return group, nil
}

func (f *fakeStore) ListGroupsForUser(_ context.Context, userID string) ([]*models.Group, error) {
	var out []*models.Group
	for _, g := range f.groups {
		if g.HasMember(userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) AddGroupMembers(_ context.Context, groupID string, userIDs []string) error {
	group, ok := f.groups[groupID]
	if !ok {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	for _, id := range userIDs {
		if !group.HasMember(id) {
			group.MemberIDs = append(group.MemberIDs, id)
		}
	}
	return nil
}

func (f *fakeStore) CreateTrip(_ context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	f.trips[trip.ID] = trip
	return nil
}

func (f *fakeStore) GetTrip(_ context.Context, tripID string) (*models.Trip, error) {
	trip, ok := f.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	return trip, nil
}

func (f *fakeStore) ListTripsByGroup(_ context.Context, groupID string) ([]*models.Trip, error) {
	var out []*models.Trip
	for _, t := range f.trips {
		if t.GroupID == groupID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateExpense(_ context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	f.expenses[expense.ID] = expense
	return nil
}

func (f *fakeStore) GetExpense(_ context.Context, expenseID string) (*models.Expense, error) {
	expense, ok := f.expenses[expenseID]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return expense, nil
}

func (f *fakeStore) ListExpensesByTrip(_ context.Context, tripID string) ([]*models.Expense, error) {
	var out []*models.Expense
	for _, e := range f.expenses {
		if e.TripID == tripID && !e.Deleted() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) SoftDeleteExpense(_ context.Context, expenseID string) error {
	expense, ok := f.expenses[expenseID]
	if !ok || expense.Deleted() {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	now := time.Now().Unix()
	expense.DeletedAt = &now
	return nil
}

func (f *fakeStore) CreateSettlement(_ context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.Status == "" {
		settlement.Status = models.SettlementPending
	}
	f.settlements[settlement.ID] = settlement
	return nil
}

func (f *fakeStore) GetSettlement(_ context.Context, settlementID string) (*models.Settlement, error) {
	settlement, ok := f.settlements[settlementID]
	if !ok {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	return settlement, nil
}

func (f *fakeStore) ListSettlementsByTrip(_ context.Context, tripID string) ([]*models.Settlement, error) {
	var out []*models.Settlement
	for _, s := range f.settlements {
		if s.TripID == tripID && !s.Deleted() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateSettlementStatus(_ context.Context, settlementID string, status models.SettlementStatus) error {
	settlement, ok := f.settlements[settlementID]
	if !ok || settlement.Deleted() {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	settlement.Status = status
	return nil
}

func (f *fakeStore) SoftDeleteSettlement(_ context.Context, settlementID string) error {
	settlement, ok := f.settlements[settlementID]
	if !ok || settlement.Deleted() {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	now := time.Now().Unix()
	settlement.DeletedAt = &now
	return nil
}

func (f *fakeStore) Close() error { return nil }
