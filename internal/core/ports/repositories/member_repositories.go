package repositories

import (
	"context"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// MemberReader defines read operations for member data
type MemberReader interface {
	// FindMemberByID retrieves a specific member by its unique identifier.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByName retrieves a member by display name.
	FindMemberByName(ctx context.Context, name string) (*domain.Member, error)

	// ListMembers retrieves all members ordered ascending by rotation position.
	ListMembers(ctx context.Context) ([]domain.Member, error)
}

// MemberWriter defines write operations for member data
type MemberWriter interface {
	// SaveMember persists a new member.
	SaveMember(ctx context.Context, member domain.Member) error

	// UpdateMember updates a member's display name and rotation position.
	UpdateMember(ctx context.Context, member domain.Member) error

	// UpdateLedgerTotals overwrites a member's three aggregate ledger fields.
	// Used by the reconciliation write-back; each call is an independent update.
	UpdateLedgerTotals(ctx context.Context, memberID string, totals domain.LedgerTotals, userID string, now time.Time) error
}

// MemberTransactionSupport defines operations used by the transaction
// recorder inside a database transaction.
type MemberTransactionSupport interface {
	// FindMemberByIDForUpdate selects a member and row-locks it within a transaction.
	FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, memberID string) (*domain.Member, error)

	// UpdateLedgerTotalsInTx overwrites a member's aggregates within a given transaction.
	UpdateLedgerTotalsInTx(ctx context.Context, tx pgx.Tx, memberID string, totals domain.LedgerTotals, userID string, now time.Time) error
}

// MemberRepositoryFacade combines all member-related repository interfaces.
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
	MemberTransactionSupport
}

// MemberRepositoryWithTx extends MemberRepositoryFacade with transaction capabilities
type MemberRepositoryWithTx interface {
	MemberRepositoryFacade
	TransactionManager
}
