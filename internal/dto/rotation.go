package dto

import (
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RotationSlotResponse annotates one roster entry with its payout-queue flag.
type RotationSlotResponse struct {
	Member MemberResponse `json:"member"`
	IsNext bool           `json:"isNext"`
}

// RotationOrderResponse is the position-ordered payout queue.
type RotationOrderResponse struct {
	NextPayoutIndex int                    `json:"nextPayoutIndex"`
	Slots           []RotationSlotResponse `json:"slots"`
}

// ToRotationOrderResponse converts rotation slots to their response DTO
func ToRotationOrderResponse(nextPayoutIndex int, slots []domain.RotationSlot) RotationOrderResponse {
	res := make([]RotationSlotResponse, len(slots))
	for i, s := range slots {
		m := s.Member
		res[i] = RotationSlotResponse{Member: ToMemberResponse(&m), IsNext: s.IsNext}
	}
	return RotationOrderResponse{NextPayoutIndex: nextPayoutIndex, Slots: res}
}

// PoolStateResponse defines the data returned for the shared pool state.
type PoolStateResponse struct {
	Foundation         decimal.Decimal `json:"foundation"`
	NextPayoutIndex    int             `json:"nextPayoutIndex"`
	CumulativeInterest decimal.Decimal `json:"cumulativeInterest"`
	NextPayoutDate     *time.Time      `json:"nextPayoutDate,omitempty"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ToPoolStateResponse converts a domain.PoolState to its response DTO
func ToPoolStateResponse(s *domain.PoolState) PoolStateResponse {
	return PoolStateResponse{
		Foundation:         s.Foundation,
		NextPayoutIndex:    s.NextPayoutIndex,
		CumulativeInterest: s.CumulativeInterest,
		NextPayoutDate:     s.NextPayoutDate,
		LastUpdatedAt:      s.LastUpdatedAt,
	}
}

// DashboardSummaryResponse is the headline view of the whole group: the
// original read-only dashboard in one payload.
type DashboardSummaryResponse struct {
	MemberCount        int             `json:"memberCount"`
	FineCount          int             `json:"fineCount"`
	TotalContributed   decimal.Decimal `json:"totalContributed"`
	TotalLoanDue       decimal.Decimal `json:"totalLoanDue"`
	Foundation         decimal.Decimal `json:"foundation"`
	CumulativeInterest decimal.Decimal `json:"cumulativeInterest"`
	NextPayoutMember   *MemberResponse `json:"nextPayoutMember,omitempty"`
}
