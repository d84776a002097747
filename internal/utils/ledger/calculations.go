package ledger

import (
	"sort"
	"strings"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Replay folds the normalized history into per-member ledger totals,
// recomputing every aggregate from zero. The result is a pure function of
// the (history, roster identity set) pair: replaying is idempotent, and the
// fold is order-independent (sums plus a final clamp).
//
// Matching is by member name, the reference the history rows carry. History
// rows that reference no roster member are dropped; reconciliation only
// corrects existing members, it never creates ones implied by history.
func Replay(events []domain.HistoryEvent, roster []domain.Member) map[string]domain.LedgerTotals {
	totals := make(map[string]domain.LedgerTotals, len(roster))
	byName := make(map[string]string, len(roster)) // member name -> member ID

	for _, m := range roster {
		totals[m.MemberID] = domain.LedgerTotals{
			Contributed:       decimal.Zero,
			FoundationContrib: decimal.Zero,
			LoanDue:           decimal.Zero,
		}
		byName[strings.TrimSpace(m.Name)] = m.MemberID
	}

	for _, ev := range events {
		memberID, ok := byName[strings.TrimSpace(ev.MemberName)]
		if !ok {
			continue
		}
		t := totals[memberID]

		switch ev.Type {
		case domain.EventContribution:
			t.Contributed = t.Contributed.Add(ev.Amount)
			// Rows recorded before the foundation split was tracked mirror
			// the full amount into the pool total.
			if ev.FoundationAmount != nil {
				t.FoundationContrib = t.FoundationContrib.Add(*ev.FoundationAmount)
			} else {
				t.FoundationContrib = t.FoundationContrib.Add(ev.Amount)
			}
		case domain.EventLoan:
			due := ev.Amount
			if ev.HasTotalDue {
				due = ev.TotalDue
			}
			t.LoanDue = t.LoanDue.Add(due)
		case domain.EventRepayment:
			t.LoanDue = t.LoanDue.Sub(ev.Amount)
		}

		totals[memberID] = t
	}

	// Repayments cannot drive a balance negative; excess is absorbed, not
	// carried as credit.
	for id, t := range totals {
		if t.LoanDue.IsNegative() {
			t.LoanDue = decimal.Zero
			totals[id] = t
		}
	}

	return totals
}

// LoanTotalDue computes principal plus accrued interest for a new loan:
// amount * (1 + interestPercent/100), rounded to 2 decimal places.
func LoanTotalDue(amount, interestPercent decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	factor := hundred.Add(interestPercent).Div(hundred)
	return amount.Mul(factor).Round(2)
}

// ClampRepayment applies a repayment against an outstanding balance,
// floored at zero.
func ClampRepayment(loanDue, amount decimal.Decimal) decimal.Decimal {
	remaining := loanDue.Sub(amount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// RotationOrder sorts the roster ascending by position and flags the member
// at list offset nextPayoutIndex as next. Out-of-range indices (negative, or
// past the roster length) flag nobody. Equal positions keep a stable order
// by name so the queue is deterministic.
func RotationOrder(roster []domain.Member, nextPayoutIndex int) []domain.RotationSlot {
	ordered := make([]domain.Member, len(roster))
	copy(ordered, roster)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].Name < ordered[j].Name
	})

	slots := make([]domain.RotationSlot, len(ordered))
	for i, m := range ordered {
		slots[i] = domain.RotationSlot{
			Member: m,
			IsNext: i == nextPayoutIndex,
		}
	}
	return slots
}

// NextIndexAfterPayout advances the payout pointer, wrapping back to the
// head of the queue once the last member has been paid. A zero-size roster
// pins the index at 0.
func NextIndexAfterPayout(current, rosterSize int) int {
	if rosterSize <= 0 {
		return 0
	}
	next := current + 1
	if next >= rosterSize || next < 0 {
		return 0
	}
	return next
}
