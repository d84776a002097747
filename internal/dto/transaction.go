package dto

import (
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordContributionRequest defines a contribution to record for a member.
// FoundationPart is the slice of the contribution allocated to the shared
// pool; when omitted it defaults to the full amount.
type RecordContributionRequest struct {
	Amount         decimal.Decimal  `json:"amount" binding:"required"`
	FoundationPart *decimal.Decimal `json:"foundationPart"`
}

// RecordLoanRequest defines a loan to record for a member.
type RecordLoanRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	InterestPercent decimal.Decimal `json:"interestPercent"`
}

// RecordRepaymentRequest defines a loan repayment to record for a member.
type RecordRepaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// HistoryEventResponse defines the data returned for one history event.
type HistoryEventResponse struct {
	EventID          string           `json:"eventID,omitempty"`
	Type             string           `json:"type"`
	MemberName       string           `json:"memberName"`
	Amount           decimal.Decimal  `json:"amount"`
	FoundationAmount *decimal.Decimal `json:"foundationAmount,omitempty"`
	InterestPercent  decimal.Decimal  `json:"interestPercent"`
	TotalDue         decimal.Decimal  `json:"totalDue"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// RecordOutcomeResponse defines the data returned after a recorder action.
type RecordOutcomeResponse struct {
	Member  MemberResponse       `json:"member"`
	Event   HistoryEventResponse `json:"event"`
	Warning string               `json:"warning,omitempty"`
}

// ToHistoryEventResponse converts a domain.HistoryEvent to its response DTO
func ToHistoryEventResponse(ev domain.HistoryEvent) HistoryEventResponse {
	return HistoryEventResponse{
		EventID:          ev.EventID,
		Type:             string(ev.Type),
		MemberName:       ev.MemberName,
		Amount:           ev.Amount,
		FoundationAmount: ev.FoundationAmount,
		InterestPercent:  ev.InterestPercent,
		TotalDue:         ev.TotalDue,
		CreatedAt:        ev.CreatedAt,
	}
}

// ToRecordOutcomeResponse converts a domain.RecordOutcome to its response DTO
func ToRecordOutcomeResponse(out *domain.RecordOutcome) RecordOutcomeResponse {
	return RecordOutcomeResponse{
		Member:  ToMemberResponse(&out.Member),
		Event:   ToHistoryEventResponse(out.Event),
		Warning: out.Warning,
	}
}

// ListHistoryResponse wraps a page of history events.
type ListHistoryResponse struct {
	Events []HistoryEventResponse `json:"events"`
}

// ToListHistoryResponse converts domain events to response DTOs
func ToListHistoryResponse(events []domain.HistoryEvent) ListHistoryResponse {
	res := make([]HistoryEventResponse, len(events))
	for i, ev := range events {
		res[i] = ToHistoryEventResponse(ev)
	}
	return ListHistoryResponse{Events: res}
}

// ListHistoryParams defines query parameters for listing history events.
type ListHistoryParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}
