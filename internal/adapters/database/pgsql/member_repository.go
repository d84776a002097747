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
)

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new repository for member data.
func NewMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryWithTx {
	return &memberRepository{pool: pool}
}

var _ portsrepo.MemberRepositoryWithTx = (*memberRepository)(nil)

const memberColumns = `member_id, name, position, contributed, foundation_contrib, loan_due, created_at, created_by, last_updated_at, last_updated_by`

func scanMember(row pgx.Row) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.MemberID,
		&m.Name,
		&m.Position,
		&m.Contributed,
		&m.FoundationContrib,
		&m.LoanDue,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// SaveMember inserts a new member with zeroed ledger fields.
func (r *memberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	query := `
		INSERT INTO members (member_id, name, position, contributed, foundation_contrib, loan_due, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		member.MemberID,
		member.Name,
		member.Position,
		member.Contributed,
		member.FoundationContrib,
		member.LoanDue,
		member.CreatedAt,
		member.CreatedBy,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save member %s: %w", member.MemberID, err)
	}
	return nil
}

// FindMemberByID retrieves a member by its ID.
func (r *memberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`
	m, err := scanMember(r.pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find member by ID %s: %w", memberID, err)
	}
	return m, nil
}

// FindMemberByName retrieves a member by display name.
func (r *memberRepository) FindMemberByName(ctx context.Context, name string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE name = $1;`
	m, err := scanMember(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find member by name %s: %w", name, err)
	}
	return m, nil
}

// ListMembers retrieves all members ordered ascending by rotation position.
func (r *memberRepository) ListMembers(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY position ASC, name ASC;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading member rows: %w", err)
	}
	return members, nil
}

// UpdateMember updates a member's display name and rotation position.
func (r *memberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	query := `
		UPDATE members
		SET name = $2, position = $3, last_updated_at = $4, last_updated_by = $5
		WHERE member_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		member.MemberID,
		member.Name,
		member.Position,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update member %s: %w", member.MemberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateLedgerTotals overwrites a member's three aggregate ledger fields.
func (r *memberRepository) UpdateLedgerTotals(ctx context.Context, memberID string, totals domain.LedgerTotals, userID string, now time.Time) error {
	query := `
		UPDATE members
		SET contributed = $2, foundation_contrib = $3, loan_due = $4, last_updated_at = $5, last_updated_by = $6
		WHERE member_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		memberID,
		totals.Contributed,
		totals.FoundationContrib,
		totals.LoanDue,
		now,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger totals for member %s: %w", memberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindMemberByIDForUpdate selects a member and row-locks it within a transaction.
func (r *memberRepository) FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1 FOR UPDATE;`
	m, err := scanMember(tx.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock member %s: %w", memberID, err)
	}
	return m, nil
}

// UpdateLedgerTotalsInTx overwrites a member's aggregates within a given transaction.
func (r *memberRepository) UpdateLedgerTotalsInTx(ctx context.Context, tx pgx.Tx, memberID string, totals domain.LedgerTotals, userID string, now time.Time) error {
	query := `
		UPDATE members
		SET contributed = $2, foundation_contrib = $3, loan_due = $4, last_updated_at = $5, last_updated_by = $6
		WHERE member_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		memberID,
		totals.Contributed,
		totals.FoundationContrib,
		totals.LoanDue,
		now,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger totals for member %s: %w", memberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Begin starts a new database transaction.
func (r *memberRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Commit commits a transaction.
func (r *memberRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

// Rollback rolls back a transaction. Rolling back an already committed
// transaction is a no-op.
func (r *memberRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
