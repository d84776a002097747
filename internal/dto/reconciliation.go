package dto

import (
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTotalsDTO mirrors domain.LedgerTotals for API responses.
type LedgerTotalsDTO struct {
	Contributed       decimal.Decimal `json:"contributed"`
	FoundationContrib decimal.Decimal `json:"foundationContrib"`
	LoanDue           decimal.Decimal `json:"loanDue"`
}

// ReconciledMemberResponse pairs a member's stored aggregates with the
// totals recomputed from history.
type ReconciledMemberResponse struct {
	Member   MemberResponse  `json:"member"`
	Proposed LedgerTotalsDTO `json:"proposed"`
}

// ReconciliationPreviewResponse is the read-only reconciliation result.
type ReconciliationPreviewResponse struct {
	SchemaOK bool                       `json:"schemaOK"`
	Members  []ReconciledMemberResponse `json:"members"`
}

// ReconciliationApplyResponse reports a write-back, including any members
// whose independent update failed.
type ReconciliationApplyResponse struct {
	UpdatedCount int                          `json:"updatedCount"`
	Failures     []domain.MemberUpdateFailure `json:"failures,omitempty"`
}

// ToReconciliationPreviewResponse converts a domain report to its DTO
func ToReconciliationPreviewResponse(report *domain.ReconciliationReport) ReconciliationPreviewResponse {
	members := make([]ReconciledMemberResponse, len(report.Members))
	for i, rm := range report.Members {
		m := rm.Member
		members[i] = ReconciledMemberResponse{
			Member: ToMemberResponse(&m),
			Proposed: LedgerTotalsDTO{
				Contributed:       rm.Proposed.Contributed,
				FoundationContrib: rm.Proposed.FoundationContrib,
				LoanDue:           rm.Proposed.LoanDue,
			},
		}
	}
	return ReconciliationPreviewResponse{SchemaOK: report.SchemaOK, Members: members}
}

// ToReconciliationApplyResponse converts a domain outcome to its DTO
func ToReconciliationApplyResponse(outcome *domain.ApplyOutcome) ReconciliationApplyResponse {
	return ReconciliationApplyResponse{
		UpdatedCount: outcome.UpdatedCount,
		Failures:     outcome.Failures,
	}
}
