package ledger

import "sort"

// DefaultDustThreshold is the balance magnitude below which a member is
// treated as already settled. One minor unit absorbs rounding noise from
// upstream equal splits without hiding real debt.
const DefaultDustThreshold = 1

// Transfer suggests a single settling payment: From pays To Amount.
type Transfer struct {
	From   string
	To     string
	Amount int64
}

// party is one side of the netting match with its remaining magnitude.
type party struct {
	id        string
	remaining int64
}

// Net converts balances into a settlement plan: a list of transfers that,
// once applied, leave every member within dust of zero.
//
// Greedy heuristic: debtors and creditors are matched largest-first, each
// transfer moving min(debtor remaining, creditor remaining). This emits at
// most N-1 transfers for N non-zero balances. It is deliberately not a
// minimum-cardinality optimizer; minimizing transfer count over an
// arbitrary debt graph is combinatorially hard, and largest-first matching
// is simple, deterministic, and linear after sorting.
//
// Ties in magnitude break on member ID so output is stable across runs.
func Net(balances Balances, dust int64) []Transfer {
	var debtors, creditors []party
	for id, bal := range balances {
		switch {
		case bal < -dust:
			debtors = append(debtors, party{id: id, remaining: -bal})
		case bal > dust:
			creditors = append(creditors, party{id: id, remaining: bal})
		}
	}

	sortByMagnitude(debtors)
	sortByMagnitude(creditors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := debtor.remaining
		if creditor.remaining < amount {
			amount = creditor.remaining
		}

		if amount > dust {
			transfers = append(transfers, Transfer{
				From:   debtor.id,
				To:     creditor.id,
				Amount: amount,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining <= dust {
			i++
		}
		if creditor.remaining <= dust {
			j++
		}
	}

	return transfers
}

func sortByMagnitude(parties []party) {
	sort.Slice(parties, func(a, b int) bool {
		if parties[a].remaining != parties[b].remaining {
			return parties[a].remaining > parties[b].remaining
		}
		return parties[a].id < parties[b].id
	})
}
