package services

import (
	"context"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationSvcFacade rebuilds per-member aggregate balances by
// replaying the transaction history.
type ReconciliationSvcFacade interface {
	// Preview replays history against the roster with no side effects.
	// When the history schema is insufficient it returns the roster
	// unchanged with SchemaOK=false instead of failing.
	Preview(ctx context.Context) (*domain.ReconciliationReport, error)

	// Apply persists the recomputed totals, one independent update per
	// member. Partial failure is reported, not rolled back. Admin only.
	Apply(ctx context.Context, actorID string) (*domain.ApplyOutcome, error)
}

// RecorderSvcFacade appends history events and applies the corresponding
// balance deltas in the same database transaction.
type RecorderSvcFacade interface {
	// RecordContribution increases a member's contributed total by amount
	// and the foundation total by foundationPart (nil means the full amount).
	RecordContribution(ctx context.Context, memberID string, amount decimal.Decimal, foundationPart *decimal.Decimal, actorID string) (*domain.RecordOutcome, error)

	// RecordLoan accrues interest up front: loan_due += amount*(1+pct/100).
	// The pool's cumulative interest is bumped best-effort after commit.
	RecordLoan(ctx context.Context, memberID string, amount, interestPercent decimal.Decimal, actorID string) (*domain.RecordOutcome, error)

	// RecordRepayment decreases a member's loan_due by amount, floored at zero.
	RecordRepayment(ctx context.Context, memberID string, amount decimal.Decimal, actorID string) (*domain.RecordOutcome, error)

	// RecordFine charges a penalty against a member. Fines live in their own
	// table and never move the ledger totals; the mirrored history event is
	// appended best-effort.
	RecordFine(ctx context.Context, memberID string, amount decimal.Decimal, reason string, actorID string) (*domain.Fine, error)
}

// RotationSvcFacade derives the payout queue and advances it.
type RotationSvcFacade interface {
	// Order returns the position-sorted roster with the next beneficiary flagged.
	Order(ctx context.Context) (int, []domain.RotationSlot, error)

	// AdvancePayout moves next_payout_index forward, wrapping past the end
	// of the roster back to 0. Admin only.
	AdvancePayout(ctx context.Context, actorID string) (*domain.PoolState, error)
}

// PoolSvcFacade reads the singleton pool state.
type PoolSvcFacade interface {
	// GetPoolState retrieves the live app_state record.
	GetPoolState(ctx context.Context) (*domain.PoolState, error)
}

// HistorySvcFacade reads the normalized transaction log.
type HistorySvcFacade interface {
	// ListEvents returns a page of normalized history events, newest first.
	ListEvents(ctx context.Context, limit, offset int) ([]domain.HistoryEvent, error)
}
