package dto

import (
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordFineRequest defines a penalty to charge against a member.
type RecordFineRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason"`
}

// FineResponse defines the data returned for one fine.
type FineResponse struct {
	FineID     string          `json:"fineID"`
	MemberName string          `json:"memberName"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToFineResponse converts a domain.Fine to its response DTO
func ToFineResponse(f domain.Fine) FineResponse {
	return FineResponse{
		FineID:     f.FineID,
		MemberName: f.MemberName,
		Amount:     f.Amount,
		Reason:     f.Reason,
		CreatedAt:  f.CreatedAt,
	}
}

// ListFinesResponse wraps the recorded fines.
type ListFinesResponse struct {
	Fines []FineResponse `json:"fines"`
}
