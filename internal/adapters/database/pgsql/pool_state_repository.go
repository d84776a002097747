package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type poolStateRepository struct {
	pool *pgxpool.Pool
}

// NewPoolStateRepository creates a new repository for the singleton pool-state row.
func NewPoolStateRepository(pool *pgxpool.Pool) portsrepo.PoolStateRepositoryFacade {
	return &poolStateRepository{pool: pool}
}

var _ portsrepo.PoolStateRepositoryFacade = (*poolStateRepository)(nil)

// GetPoolState retrieves the single live pool-state record.
func (r *poolStateRepository) GetPoolState(ctx context.Context) (*domain.PoolState, error) {
	query := `
		SELECT state_id, foundation, next_payout_index, cumulative_interest, next_payout_date, last_updated_at
		FROM app_state
		ORDER BY last_updated_at DESC
		LIMIT 1;
	`
	var s domain.PoolState
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.StateID,
		&s.Foundation,
		&s.NextPayoutIndex,
		&s.CumulativeInterest,
		&s.NextPayoutDate,
		&s.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pool state: %w", err)
	}
	return &s, nil
}

// UpdatePoolState overwrites the pool-state row in place.
func (r *poolStateRepository) UpdatePoolState(ctx context.Context, state domain.PoolState) error {
	query := `
		UPDATE app_state
		SET foundation = $2, next_payout_index = $3, cumulative_interest = $4, next_payout_date = $5, last_updated_at = $6
		WHERE state_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		state.StateID,
		state.Foundation,
		state.NextPayoutIndex,
		state.CumulativeInterest,
		state.NextPayoutDate,
		state.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update pool state %s: %w", state.StateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddCumulativeInterest increments the accrued-interest counter in place.
func (r *poolStateRepository) AddCumulativeInterest(ctx context.Context, delta decimal.Decimal, now time.Time) error {
	query := `UPDATE app_state SET cumulative_interest = cumulative_interest + $1, last_updated_at = $2;`
	tag, err := r.pool.Exec(ctx, query, delta, now)
	if err != nil {
		return fmt.Errorf("failed to add cumulative interest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddFoundation increments the shared pool balance in place.
func (r *poolStateRepository) AddFoundation(ctx context.Context, delta decimal.Decimal, now time.Time) error {
	query := `UPDATE app_state SET foundation = foundation + $1, last_updated_at = $2;`
	tag, err := r.pool.Exec(ctx, query, delta, now)
	if err != nil {
		return fmt.Errorf("failed to add to foundation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
