package pgsql

import (
	"context"
	"fmt"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type fineRepository struct {
	pool *pgxpool.Pool
}

// NewFineRepository creates a new repository for the fines table.
func NewFineRepository(pool *pgxpool.Pool) portsrepo.FineRepositoryFacade {
	return &fineRepository{pool: pool}
}

var _ portsrepo.FineRepositoryFacade = (*fineRepository)(nil)

// SaveFine persists a new fine.
func (r *fineRepository) SaveFine(ctx context.Context, fine domain.Fine) error {
	query := `
		INSERT INTO fines (fine_id, member, amount, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		fine.FineID,
		fine.MemberName,
		fine.Amount,
		fine.Reason,
		fine.CreatedAt,
		fine.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fine: %w", err)
	}
	return nil
}

// ListFines retrieves every fine, newest first.
func (r *fineRepository) ListFines(ctx context.Context) ([]domain.Fine, error) {
	query := `
		SELECT fine_id, member, amount, reason, created_at, created_by
		FROM fines
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list fines: %w", err)
	}
	defer rows.Close()

	var fines []domain.Fine
	for rows.Next() {
		var f domain.Fine
		if err := rows.Scan(&f.FineID, &f.MemberName, &f.Amount, &f.Reason, &f.CreatedAt, &f.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan fine row: %w", err)
		}
		fines = append(fines, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fine rows: %w", err)
	}
	return fines, nil
}

// CountFines returns the number of recorded fines.
func (r *fineRepository) CountFines(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM fines;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count fines: %w", err)
	}
	return count, nil
}
