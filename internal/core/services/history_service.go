package services

import (
	"context"
	"fmt"

	"github.com/Marceldinga/The-young-shall-grow/internal/cache"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/utils/mapping"
)

// historyService reads the append-only transaction log and normalizes raw
// rows into canonical events.
type historyService struct {
	BaseService
	historyRepo portsrepo.HistoryReader
	readCache   *cache.TableCache
}

// NewHistoryService creates a new history service.
func NewHistoryService(repo portsrepo.HistoryReader, readCache *cache.TableCache) portssvc.HistorySvcFacade {
	return &historyService{historyRepo: repo, readCache: readCache}
}

var _ portssvc.HistorySvcFacade = (*historyService)(nil)

func (s *historyService) ListEvents(ctx context.Context, limit, offset int) ([]domain.HistoryEvent, error) {
	key := fmt.Sprintf("%s:%d:%d", cache.KeyHistory, limit, offset)
	if cached, ok := s.readCache.Get(key); ok {
		if events, ok := cached.([]domain.HistoryEvent); ok {
			return events, nil
		}
	}

	rows, err := s.historyRepo.ListRawEventsRange(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list history rows")
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	events, err := mapping.NormalizeHistoryRows(rows)
	if err != nil {
		// Schema drift on a read endpoint is surfaced, unlike the
		// reconciliation path which degrades silently.
		s.LogError(ctx, err, "History rows could not be normalized")
		return nil, err
	}

	s.readCache.Set(key, events)
	return events, nil
}
