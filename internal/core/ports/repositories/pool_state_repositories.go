package repositories

import (
	"context"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PoolStateRepositoryFacade manages the singleton app_state record.
type PoolStateRepositoryFacade interface {
	// GetPoolState retrieves the single live pool-state row.
	GetPoolState(ctx context.Context) (*domain.PoolState, error)

	// UpdatePoolState overwrites the pool-state row in place.
	UpdatePoolState(ctx context.Context, state domain.PoolState) error

	// AddCumulativeInterest bumps the accrued-interest counter. Loan
	// recording calls this best-effort after the balance commit.
	AddCumulativeInterest(ctx context.Context, delta decimal.Decimal, now time.Time) error

	// AddFoundation bumps the shared pool balance.
	AddFoundation(ctx context.Context, delta decimal.Decimal, now time.Time) error
}
