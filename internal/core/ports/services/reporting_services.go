package services

import (
	"context"

	"github.com/Marceldinga/The-young-shall-grow/internal/dto"
)

// ReportingSvcFacade assembles the read-only dashboard view.
type ReportingSvcFacade interface {
	// DashboardSummary returns roster size, fine count, aggregate totals,
	// pool balance and the next beneficiary in one payload.
	DashboardSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error)

	// ListFines returns every recorded fine, newest first.
	ListFines(ctx context.Context) ([]dto.FineResponse, error)
}
