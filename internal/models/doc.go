// Package models defines the core domain records for chipin.
//
// # Records
//
//   - User: a registered account; also the identity anchor for balances
//   - Group: a circle of people who share costs (e.g. "Flatmates")
//   - Trip: a scope under a group that expenses and settlements attach to
//   - Expense: a shared cost paid by one member, divided into Splits
//   - Split: one member's share of an expense
//   - Settlement: a payment recorded between two members to clear debt
//
// # Design principles
//
//  1. All monetary amounts are int64 minor currency units (cents). The
//     ledger math never touches floating point; conversion to and from
//     decimal strings happens at the HTTP boundary (internal/money).
//  2. Expenses and settlements are soft-deleted: DeletedAt is set instead
//     of removing the row, and deleted records never reach the ledger.
//  3. Relationships use ID strings rather than pointers to avoid circular
//     references; enrichment (display names on balances) is a read-time
//     join in the service layer.
package models
