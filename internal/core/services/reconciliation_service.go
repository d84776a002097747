package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	"github.com/Marceldinga/The-young-shall-grow/internal/cache"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/utils/ledger"
	"github.com/Marceldinga/The-young-shall-grow/internal/utils/mapping"
)

// reconciliationService rebuilds member aggregates by replaying the history
// log from zero, independent of any drift in the stored fields.
type reconciliationService struct {
	BaseService
	memberRepo  portsrepo.MemberRepositoryFacade
	historyRepo portsrepo.HistoryReader
	readCache   *cache.TableCache
}

// ReconciliationServiceOption is a functional option for configuring the service
type ReconciliationServiceOption func(*reconciliationService)

// WithReconciliationAuthorizer adds the admin authorizer dependency
func WithReconciliationAuthorizer(authorizer AdminAuthorizer) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.Authorizer = authorizer
	}
}

// WithReconciliationReadCache adds the shared read cache
func WithReconciliationReadCache(c *cache.TableCache) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.readCache = c
	}
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(memberRepo portsrepo.MemberRepositoryFacade, historyRepo portsrepo.HistoryReader, options ...ReconciliationServiceOption) portssvc.ReconciliationSvcFacade {
	svc := &reconciliationService{
		memberRepo:  memberRepo,
		historyRepo: historyRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// replay loads roster and history and folds the log into proposed totals.
// When the history schema cannot supply the minimum columns the roster is
// returned unchanged with SchemaOK=false; that tolerance policy is the
// contract, not an error.
func (s *reconciliationService) replay(ctx context.Context) (*domain.ReconciliationReport, []domain.Member, error) {
	roster, err := s.memberRepo.ListMembers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load roster for reconciliation")
		return nil, nil, err
	}

	rows, err := s.historyRepo.ListRawEvents(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load history for reconciliation")
		return nil, nil, err
	}

	events, err := mapping.NormalizeHistoryRows(rows)
	if err != nil {
		if errors.Is(err, apperrors.ErrSchemaInsufficient) {
			s.LogWarn(ctx, "History schema insufficient, returning roster unchanged",
				slog.String("reason", err.Error()))
			report := &domain.ReconciliationReport{SchemaOK: false, Members: unchangedReport(roster)}
			return report, roster, nil
		}
		return nil, nil, err
	}

	totals := ledger.Replay(events, roster)

	members := make([]domain.ReconciledMember, len(roster))
	for i, m := range roster {
		members[i] = domain.ReconciledMember{Member: m, Proposed: totals[m.MemberID]}
	}
	return &domain.ReconciliationReport{SchemaOK: true, Members: members}, roster, nil
}

// unchangedReport echoes the stored aggregates as the proposed totals.
func unchangedReport(roster []domain.Member) []domain.ReconciledMember {
	members := make([]domain.ReconciledMember, len(roster))
	for i, m := range roster {
		members[i] = domain.ReconciledMember{
			Member: m,
			Proposed: domain.LedgerTotals{
				Contributed:       m.Contributed,
				FoundationContrib: m.FoundationContrib,
				LoanDue:           m.LoanDue,
			},
		}
	}
	return members
}

func (s *reconciliationService) Preview(ctx context.Context) (*domain.ReconciliationReport, error) {
	report, _, err := s.replay(ctx)
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Reconciliation preview computed",
		slog.Int("member_count", len(report.Members)),
		slog.Bool("schema_ok", report.SchemaOK))
	return report, nil
}

func (s *reconciliationService) Apply(ctx context.Context, actorID string) (*domain.ApplyOutcome, error) {
	if err := s.AuthorizeAdmin(ctx, actorID); err != nil {
		s.LogError(ctx, err, "User not authorized to apply reconciliation",
			slog.String("user_id", actorID))
		return nil, err
	}

	report, _, err := s.replay(ctx)
	if err != nil {
		return nil, err
	}
	if !report.SchemaOK {
		s.LogWarn(ctx, "Reconciliation skipped, history schema insufficient")
		return &domain.ApplyOutcome{UpdatedCount: 0}, nil
	}

	now := time.Now().UTC()
	outcome := &domain.ApplyOutcome{}

	// One independent update per member. A failure partway leaves earlier
	// members updated; each failure carries enough context to retry.
	for _, rm := range report.Members {
		err := s.memberRepo.UpdateLedgerTotals(ctx, rm.Member.MemberID, rm.Proposed, actorID, now)
		if err != nil {
			s.LogError(ctx, err, "Failed to write back reconciled totals",
				slog.String("member_id", rm.Member.MemberID),
				slog.String("member_name", rm.Member.Name))
			outcome.Failures = append(outcome.Failures, domain.MemberUpdateFailure{
				MemberID:  rm.Member.MemberID,
				Name:      rm.Member.Name,
				Operation: "reconciliation write-back",
				Reason:    err.Error(),
			})
			continue
		}
		outcome.UpdatedCount++
	}

	s.readCache.Invalidate(cache.KeyMembers)

	s.LogInfo(ctx, "Reconciliation applied",
		slog.Int("updated", outcome.UpdatedCount),
		slog.Int("failed", len(outcome.Failures)))
	return outcome, nil
}
