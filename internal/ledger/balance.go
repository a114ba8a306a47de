// Package ledger is the balance and debt-netting engine. It folds expense
// and settlement records into per-member net positions and derives a small
// set of pairwise transfers that would bring every balance to zero.
//
// The engine is a pure function of its inputs: no I/O, no caching, no
// shared state. Callers re-fetch the full record set and recompute from
// scratch on every request, so computations for independent scopes can run
// concurrently without coordination.
//
// All arithmetic is int64 minor currency units. Inputs are expected to be
// pre-filtered: soft-deleted records and settlements that never happened
// (pending, rejected) must not be passed in. Structural validation (splits
// summing to the expense amount, positive amounts) is likewise the caller's
// job; the engine is a total function over well-formed input.
package ledger

import "errors"

// ErrOverflow is returned when balance arithmetic would exceed int64.
// The engine fails loudly rather than silently wrapping.
var ErrOverflow = errors.New("ledger: balance arithmetic overflow")

// Expense carries the minimal expense information needed for aggregation.
type Expense struct {
	PayerID string
	Amount  int64
	Splits  []Split
}

// Split is one member's share of an expense.
type Split struct {
	UserID string
	Amount int64
}

// Settlement carries the minimal settlement information needed for
// aggregation.
type Settlement struct {
	FromUserID string
	ToUserID   string
	Amount     int64
}

// Balances maps member ID to net position in minor units.
// Positive = net creditor (is owed money); negative = net debtor.
type Balances map[string]int64

// Aggregate folds expenses and settlements into per-member net balances.
//
// For each expense the payer is credited the full amount and every split
// participant is debited their share. For each settlement the payer is
// credited (their debt shrinks) and the payee is debited (their credit
// shrinks). For any closed record set whose splits sum to their parent
// amounts, the resulting balances sum to zero.
func Aggregate(expenses []Expense, settlements []Settlement) (Balances, error) {
	balances := make(Balances)

	for _, e := range expenses {
		if err := balances.add(e.PayerID, e.Amount); err != nil {
			return nil, err
		}
		for _, s := range e.Splits {
			if err := balances.add(s.UserID, -s.Amount); err != nil {
				return nil, err
			}
		}
	}

	for _, s := range settlements {
		if err := balances.add(s.FromUserID, s.Amount); err != nil {
			return nil, err
		}
		if err := balances.add(s.ToUserID, -s.Amount); err != nil {
			return nil, err
		}
	}

	return balances, nil
}

// add applies delta to the member's balance, detecting int64 overflow.
func (b Balances) add(id string, delta int64) error {
	cur := b[id]
	sum := cur + delta
	if (delta > 0 && sum < cur) || (delta < 0 && sum > cur) {
		return ErrOverflow
	}
	b[id] = sum
	return nil
}
