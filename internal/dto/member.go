package dto

import (
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMemberRequest defines the data needed to register a new member.
type CreateMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position" binding:"required,min=0"`
}

// UpdateMemberRequest defines the data allowed for updating a member.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateMemberRequest struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
}

// MemberResponse defines the data returned for a member.
type MemberResponse struct {
	MemberID          string          `json:"memberID"`
	Name              string          `json:"name"`
	Position          int             `json:"position"`
	Contributed       decimal.Decimal `json:"contributed"`
	FoundationContrib decimal.Decimal `json:"foundationContrib"`
	LoanDue           decimal.Decimal `json:"loanDue"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// ToMemberResponse converts a domain.Member to MemberResponse DTO
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:          m.MemberID,
		Name:              m.Name,
		Position:          m.Position,
		Contributed:       m.Contributed,
		FoundationContrib: m.FoundationContrib,
		LoanDue:           m.LoanDue,
		CreatedAt:         m.CreatedAt,
		LastUpdatedAt:     m.LastUpdatedAt,
	}
}

// ToListMemberResponse converts a slice of domain.Member to response DTOs
func ToListMemberResponse(members []domain.Member) []MemberResponse {
	res := make([]MemberResponse, len(members))
	for i := range members {
		res[i] = ToMemberResponse(&members[i])
	}
	return res
}

// ListMembersResponse wraps the list of members.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}
