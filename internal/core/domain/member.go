package domain

import (
	"github.com/shopspring/decimal"
)

// Member represents one participant of the njangi group.
// This is the primary representation used by services.
type Member struct {
	MemberID          string          `json:"memberID"` // Primary Key (UUID)
	Name              string          `json:"name"`     // Display name, unique within the group
	Position          int             `json:"position"` // Rotation order; ascending sort defines the payout queue
	Contributed       decimal.Decimal `json:"contributed"`       // Cumulative contribution amount
	FoundationContrib decimal.Decimal `json:"foundationContrib"` // Cumulative amount allocated to the shared pool
	LoanDue           decimal.Decimal `json:"loanDue"`           // Outstanding loan balance incl. accrued interest; never negative
	AuditFields
}

// LedgerTotals is the triplet of aggregate balances the reconciliation
// engine recomputes for each member by replaying history.
type LedgerTotals struct {
	Contributed       decimal.Decimal `json:"contributed"`
	FoundationContrib decimal.Decimal `json:"foundationContrib"`
	LoanDue           decimal.Decimal `json:"loanDue"`
}
