package models

// SettlementStatus is the lifecycle state of a recorded payment.
type SettlementStatus string

const (
	// SettlementPending means the payment was proposed but not yet made.
	SettlementPending SettlementStatus = "pending"

	// SettlementCompleted means the payer marked the payment as made.
	SettlementCompleted SettlementStatus = "completed"

	// SettlementConfirmed means the payee acknowledged receiving it.
	SettlementConfirmed SettlementStatus = "confirmed"

	// SettlementRejected means the payee disputed the payment.
	SettlementRejected SettlementStatus = "rejected"
)

// Valid reports whether s is a known settlement status.
func (s SettlementStatus) Valid() bool {
	switch s {
	case SettlementPending, SettlementCompleted, SettlementConfirmed, SettlementRejected:
		return true
	}
	return false
}

// CountsTowardBalance reports whether settlements in this status offset
// member balances. Only payments that actually happened count.
func (s SettlementStatus) CountsTowardBalance() bool {
	return s == SettlementCompleted || s == SettlementConfirmed
}

// CanTransitionTo reports whether the status may move to next.
// Allowed: pending -> completed, pending -> rejected, completed -> confirmed.
func (s SettlementStatus) CanTransitionTo(next SettlementStatus) bool {
	switch s {
	case SettlementPending:
		return next == SettlementCompleted || next == SettlementRejected
	case SettlementCompleted:
		return next == SettlementConfirmed
	}
	return false
}

// Settlement represents a payment between two group members to clear debt.
// Settlements are scoped to a trip, like the expenses they offset.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// TripID is the trip this settlement belongs to.
	TripID string

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string

	// Amount is the payment amount in minor currency units, always positive.
	Amount int64

	// Status is the lifecycle state; only completed and confirmed
	// settlements participate in balance computation.
	Status SettlementStatus

	// Note is an optional description for the settlement.
	Note string

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// DeletedAt is the Unix timestamp of soft deletion, nil while live.
	DeletedAt *int64
}

// Deleted reports whether the settlement has been soft-deleted.
func (s *Settlement) Deleted() bool {
	return s.DeletedAt != nil
}
