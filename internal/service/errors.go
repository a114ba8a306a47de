// Package service contains the application services that sit between the
// HTTP handlers and the store. All domain validation lives here; the
// ledger engine assumes well-formed input. Scope resolution for balance
// computation also lives here.
package service

import "errors"

var (
	// ErrNonPositiveAmount rejects zero or negative money amounts.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrSplitMismatch rejects expenses whose split shares do not sum to
	// the expense amount.
	ErrSplitMismatch = errors.New("splits must sum to the expense amount")

	// ErrNoSplits rejects expenses with neither explicit splits nor a
	// list of members to split among.
	ErrNoSplits = errors.New("expense needs splits or members to split among")

	// ErrDuplicateSplit rejects expenses naming the same member twice.
	ErrDuplicateSplit = errors.New("duplicate member in splits")

	// ErrNotGroupMember rejects references to users outside the group a
	// record belongs to.
	ErrNotGroupMember = errors.New("user is not a member of this group")

	// ErrUnknownUser rejects references to users that do not exist.
	ErrUnknownUser = errors.New("user does not exist")

	// ErrSelfSettlement rejects settlements where payer and payee match.
	ErrSelfSettlement = errors.New("settlement payer and payee must differ")

	// ErrInvalidStatus rejects unknown settlement statuses.
	ErrInvalidStatus = errors.New("invalid settlement status")

	// ErrInvalidTransition rejects disallowed settlement status moves.
	ErrInvalidTransition = errors.New("invalid settlement status transition")
)
