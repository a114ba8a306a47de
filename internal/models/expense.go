package models

// Expense represents a shared cost paid by one member on behalf of several.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// PayerID is the user who fronted the money.
	PayerID string

	// Amount is the full expense amount in minor currency units.
	Amount int64

	// Description is a short human-readable label (e.g. "Groceries").
	Description string

	// Splits divides Amount across the participating members.
	// The service layer guarantees the split amounts sum to Amount.
	Splits []Split

	// CreatedBy is the user ID that logged the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was logged.
	CreatedAt int64

	// DeletedAt is the Unix timestamp of soft deletion, nil while live.
	// Deleted expenses are invisible to balance computation.
	DeletedAt *int64
}

// Deleted reports whether the expense has been soft-deleted.
func (e *Expense) Deleted() bool {
	return e.DeletedAt != nil
}

// Split is one member's share of an expense, in minor currency units.
type Split struct {
	// UserID is the member who owes this share.
	UserID string

	// Amount is the share in minor currency units.
	Amount int64
}
