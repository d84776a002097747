package services

import (
	"context"

	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/dto"
	"github.com/Marceldinga/The-young-shall-grow/internal/utils/ledger"
	"github.com/shopspring/decimal"
)

// reportingService assembles the dashboard headline view: roster counts,
// aggregate totals, pool balance and the next beneficiary.
type reportingService struct {
	BaseService
	memberSvc portssvc.MemberReaderSvc
	poolRepo  portsrepo.PoolStateRepositoryFacade
	fineRepo  portsrepo.FineRepositoryFacade
}

// NewReportingService creates a new dashboard reporting service.
func NewReportingService(memberSvc portssvc.MemberReaderSvc, poolRepo portsrepo.PoolStateRepositoryFacade, fineRepo portsrepo.FineRepositoryFacade) *reportingService {
	return &reportingService{memberSvc: memberSvc, poolRepo: poolRepo, fineRepo: fineRepo}
}

// DashboardSummary computes the headline dashboard payload.
func (s *reportingService) DashboardSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	members, err := s.memberSvc.ListMembers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members for dashboard summary")
		return nil, err
	}

	state, err := s.poolRepo.GetPoolState(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load pool state for dashboard summary")
		return nil, err
	}

	fineCount, err := s.fineRepo.CountFines(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count fines for dashboard summary")
		return nil, err
	}

	totalContributed := decimal.Zero
	totalLoanDue := decimal.Zero
	for _, m := range members {
		totalContributed = totalContributed.Add(m.Contributed)
		totalLoanDue = totalLoanDue.Add(m.LoanDue)
	}

	summary := &dto.DashboardSummaryResponse{
		MemberCount:        len(members),
		FineCount:          fineCount,
		TotalContributed:   totalContributed,
		TotalLoanDue:       totalLoanDue,
		Foundation:         state.Foundation,
		CumulativeInterest: state.CumulativeInterest,
	}

	slots := ledger.RotationOrder(members, state.NextPayoutIndex)
	for _, slot := range slots {
		if slot.IsNext {
			m := slot.Member
			resp := dto.ToMemberResponse(&m)
			summary.NextPayoutMember = &resp
			break
		}
	}

	return summary, nil
}

// ListFines returns every recorded fine, newest first.
func (s *reportingService) ListFines(ctx context.Context) ([]dto.FineResponse, error) {
	fines, err := s.fineRepo.ListFines(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fines")
		return nil, err
	}

	res := make([]dto.FineResponse, len(fines))
	for i, f := range fines {
		res[i] = dto.ToFineResponse(f)
	}
	return res, nil
}
