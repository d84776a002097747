package repositories

import (
	"context"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
)

// FineRepositoryFacade manages the fines table. Fines are append-only.
type FineRepositoryFacade interface {
	// SaveFine persists a new fine.
	SaveFine(ctx context.Context, fine domain.Fine) error

	// ListFines retrieves every fine, newest first.
	ListFines(ctx context.Context) ([]domain.Fine, error)

	// CountFines returns the number of recorded fines.
	CountFines(ctx context.Context) (int, error)
}
