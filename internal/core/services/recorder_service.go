package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	"github.com/Marceldinga/The-young-shall-grow/internal/cache"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/utils/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// recorderService appends history events and applies the matching balance
// deltas. Each action runs the member update and the history append inside
// one database transaction, with a row lock on the member, so a concurrent
// action on the same member cannot silently lose an increment.
type recorderService struct {
	BaseService
	memberRepo  portsrepo.MemberRepositoryWithTx
	historyRepo portsrepo.HistoryWriter
	poolRepo    portsrepo.PoolStateRepositoryFacade
	fineRepo    portsrepo.FineRepositoryFacade
	readCache   *cache.TableCache
}

// RecorderServiceOption is a functional option for configuring the recorder service
type RecorderServiceOption func(*recorderService)

// WithRecorderAuthorizer adds the admin authorizer dependency
func WithRecorderAuthorizer(authorizer AdminAuthorizer) RecorderServiceOption {
	return func(s *recorderService) {
		s.Authorizer = authorizer
	}
}

// WithRecorderReadCache adds the shared read cache
func WithRecorderReadCache(c *cache.TableCache) RecorderServiceOption {
	return func(s *recorderService) {
		s.readCache = c
	}
}

// NewRecorderService creates a new transaction recorder service.
func NewRecorderService(memberRepo portsrepo.MemberRepositoryWithTx, historyRepo portsrepo.HistoryWriter, poolRepo portsrepo.PoolStateRepositoryFacade, fineRepo portsrepo.FineRepositoryFacade, options ...RecorderServiceOption) portssvc.RecorderSvcFacade {
	svc := &recorderService{
		memberRepo:  memberRepo,
		historyRepo: historyRepo,
		poolRepo:    poolRepo,
		fineRepo:    fineRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RecorderSvcFacade = (*recorderService)(nil)

// mutateAndAppend runs the shared recorder skeleton: lock the member row,
// let apply compute the new totals and the event to log, write both, commit.
func (s *recorderService) mutateAndAppend(
	ctx context.Context,
	memberID string,
	actorID string,
	apply func(member *domain.Member) (domain.LedgerTotals, domain.HistoryEvent, error),
) (*domain.RecordOutcome, error) {
	tx, err := s.memberRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin recorder transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.memberRepo.Rollback(ctx, tx)
	}()

	member, err := s.memberRepo.FindMemberByIDForUpdate(ctx, tx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to lock member row", slog.String("member_id", memberID))
		return nil, err
	}

	totals, event, err := apply(member)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.memberRepo.UpdateLedgerTotalsInTx(ctx, tx, memberID, totals, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to update member balances",
			slog.String("member_id", memberID),
			slog.String("operation", string(event.Type)))
		return nil, err
	}

	event.EventID = uuid.NewString()
	event.MemberName = member.Name
	event.CreatedAt = now
	if err := s.historyRepo.AppendEventInTx(ctx, tx, event); err != nil {
		s.LogError(ctx, err, "Failed to append history event",
			slog.String("member_id", memberID),
			slog.String("operation", string(event.Type)))
		return nil, err
	}

	if err := s.memberRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit recorder transaction",
			slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	member.Contributed = totals.Contributed
	member.FoundationContrib = totals.FoundationContrib
	member.LoanDue = totals.LoanDue
	member.LastUpdatedAt = now
	member.LastUpdatedBy = actorID

	s.readCache.Invalidate(cache.KeyMembers, cache.KeyPoolState)
	s.readCache.InvalidatePrefix(cache.KeyHistory)

	return &domain.RecordOutcome{Member: *member, Event: event}, nil
}

func (s *recorderService) RecordContribution(ctx context.Context, memberID string, amount decimal.Decimal, foundationPart *decimal.Decimal, actorID string) (*domain.RecordOutcome, error) {
	if err := s.AuthorizeAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("contribution amount must be positive: %w", apperrors.ErrValidation)
	}

	// The foundation slice defaults to the full amount, and both values are
	// recorded on the history row so reconciliation replays the same split.
	foundation := amount
	if foundationPart != nil {
		if foundationPart.IsNegative() {
			return nil, fmt.Errorf("foundation part must not be negative: %w", apperrors.ErrValidation)
		}
		foundation = *foundationPart
	}

	outcome, err := s.mutateAndAppend(ctx, memberID, actorID, func(member *domain.Member) (domain.LedgerTotals, domain.HistoryEvent, error) {
		totals := domain.LedgerTotals{
			Contributed:       member.Contributed.Add(amount),
			FoundationContrib: member.FoundationContrib.Add(foundation),
			LoanDue:           member.LoanDue,
		}
		event := domain.HistoryEvent{
			Type:             domain.EventContribution,
			Amount:           amount,
			FoundationAmount: &foundation,
		}
		return totals, event, nil
	})
	if err != nil {
		return nil, err
	}

	// The pool balance grows by the foundation slice; best-effort.
	if poolErr := s.poolRepo.AddFoundation(ctx, foundation, time.Now().UTC()); poolErr != nil {
		s.LogWarn(ctx, "Failed to update pool foundation balance",
			slog.String("member_id", memberID),
			slog.String("error", poolErr.Error()))
		outcome.Warning = "contribution recorded, but the pool balance could not be updated"
	}

	s.LogInfo(ctx, "Contribution recorded",
		slog.String("member_id", memberID),
		slog.String("amount", amount.String()))
	return outcome, nil
}

func (s *recorderService) RecordLoan(ctx context.Context, memberID string, amount, interestPercent decimal.Decimal, actorID string) (*domain.RecordOutcome, error) {
	if err := s.AuthorizeAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("loan amount must be positive: %w", apperrors.ErrValidation)
	}
	if interestPercent.IsNegative() {
		return nil, fmt.Errorf("interest percent must not be negative: %w", apperrors.ErrValidation)
	}

	totalDue := ledger.LoanTotalDue(amount, interestPercent)

	outcome, err := s.mutateAndAppend(ctx, memberID, actorID, func(member *domain.Member) (domain.LedgerTotals, domain.HistoryEvent, error) {
		totals := domain.LedgerTotals{
			Contributed:       member.Contributed,
			FoundationContrib: member.FoundationContrib,
			LoanDue:           member.LoanDue.Add(totalDue),
		}
		event := domain.HistoryEvent{
			Type:            domain.EventLoan,
			Amount:          amount,
			InterestPercent: interestPercent,
			TotalDue:        totalDue,
			HasTotalDue:     true,
		}
		return totals, event, nil
	})
	if err != nil {
		return nil, err
	}

	// Accrued interest is tracked on the singleton pool state; failing to
	// bump it does not abort the loan.
	interest := totalDue.Sub(amount)
	if poolErr := s.poolRepo.AddCumulativeInterest(ctx, interest, time.Now().UTC()); poolErr != nil {
		s.LogWarn(ctx, "Failed to update pool cumulative interest",
			slog.String("member_id", memberID),
			slog.String("interest", interest.String()),
			slog.String("error", poolErr.Error()))
		outcome.Warning = "loan recorded, but pool interest could not be updated"
	}

	s.LogInfo(ctx, "Loan recorded",
		slog.String("member_id", memberID),
		slog.String("amount", amount.String()),
		slog.String("total_due", totalDue.String()))
	return outcome, nil
}

func (s *recorderService) RecordRepayment(ctx context.Context, memberID string, amount decimal.Decimal, actorID string) (*domain.RecordOutcome, error) {
	if err := s.AuthorizeAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("repayment amount must be positive: %w", apperrors.ErrValidation)
	}

	outcome, err := s.mutateAndAppend(ctx, memberID, actorID, func(member *domain.Member) (domain.LedgerTotals, domain.HistoryEvent, error) {
		remaining := ledger.ClampRepayment(member.LoanDue, amount)
		totals := domain.LedgerTotals{
			Contributed:       member.Contributed,
			FoundationContrib: member.FoundationContrib,
			LoanDue:           remaining,
		}
		event := domain.HistoryEvent{
			Type:        domain.EventRepayment,
			Amount:      amount,
			TotalDue:    remaining,
			HasTotalDue: true,
		}
		return totals, event, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Repayment recorded",
		slog.String("member_id", memberID),
		slog.String("amount", amount.String()))
	return outcome, nil
}

func (s *recorderService) RecordFine(ctx context.Context, memberID string, amount decimal.Decimal, reason string, actorID string) (*domain.Fine, error) {
	if err := s.AuthorizeAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("fine amount must be positive: %w", apperrors.ErrValidation)
	}

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find member for fine", slog.String("member_id", memberID))
		return nil, err
	}

	now := time.Now().UTC()
	fine := domain.Fine{
		FineID:     uuid.NewString(),
		MemberName: member.Name,
		Amount:     amount,
		Reason:     reason,
		CreatedAt:  now,
		CreatedBy:  actorID,
	}
	if err := s.fineRepo.SaveFine(ctx, fine); err != nil {
		s.LogError(ctx, err, "Failed to save fine", slog.String("member_id", memberID))
		return nil, err
	}

	// Mirror the fine into the history log so the timeline shows it; the
	// fines table stays authoritative, so a failed append only warns.
	event := domain.HistoryEvent{
		EventID:    uuid.NewString(),
		Type:       domain.EventFine,
		MemberName: member.Name,
		Amount:     amount,
		CreatedAt:  now,
	}
	if err := s.historyRepo.AppendEvent(ctx, event); err != nil {
		s.LogWarn(ctx, "Failed to append fine history event",
			slog.String("member_id", memberID),
			slog.String("error", err.Error()))
	}

	s.readCache.InvalidatePrefix(cache.KeyHistory)

	s.LogInfo(ctx, "Fine recorded",
		slog.String("member_id", memberID),
		slog.String("amount", amount.String()))
	return &fine, nil
}
