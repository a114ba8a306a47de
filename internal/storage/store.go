// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mtilda/chipin/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
// (or has been soft-deleted, for records that support it).
var ErrNotFound = errors.New("storage: not found")

// Store defines the interface for chipin's persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// List queries never return soft-deleted expenses or settlements; the
// ledger only ever sees live records.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// Groups and membership.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error

	// Trips.
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	ListTripsByGroup(ctx context.Context, groupID string) ([]*models.Trip, error)

	// Expenses. CreateExpense persists the expense and its splits in one
	// transaction. SoftDeleteExpense marks the record deleted without
	// removing it.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpensesByTrip(ctx context.Context, tripID string) ([]*models.Expense, error)
	SoftDeleteExpense(ctx context.Context, expenseID string) error

	// Settlements.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlementsByTrip(ctx context.Context, tripID string) ([]*models.Settlement, error)
	UpdateSettlementStatus(ctx context.Context, settlementID string, status models.SettlementStatus) error
	SoftDeleteSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
