package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/cache"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/utils/ledger"
)

// rotationService derives the payout queue from the roster and the
// singleton pool state.
type rotationService struct {
	BaseService
	memberRepo portsrepo.MemberReader
	poolRepo   portsrepo.PoolStateRepositoryFacade
	readCache  *cache.TableCache
}

// RotationServiceOption is a functional option for configuring the rotation service
type RotationServiceOption func(*rotationService)

// WithRotationAuthorizer adds the admin authorizer dependency
func WithRotationAuthorizer(authorizer AdminAuthorizer) RotationServiceOption {
	return func(s *rotationService) {
		s.Authorizer = authorizer
	}
}

// WithRotationReadCache adds the shared read cache
func WithRotationReadCache(c *cache.TableCache) RotationServiceOption {
	return func(s *rotationService) {
		s.readCache = c
	}
}

// NewRotationService creates a new rotation service.
func NewRotationService(memberRepo portsrepo.MemberReader, poolRepo portsrepo.PoolStateRepositoryFacade, options ...RotationServiceOption) portssvc.RotationSvcFacade {
	svc := &rotationService{memberRepo: memberRepo, poolRepo: poolRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.RotationSvcFacade = (*rotationService)(nil)

func (s *rotationService) Order(ctx context.Context) (int, []domain.RotationSlot, error) {
	roster, err := s.memberRepo.ListMembers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load roster for rotation order")
		return 0, nil, err
	}

	state, err := s.poolRepo.GetPoolState(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load pool state for rotation order")
		return 0, nil, err
	}

	slots := ledger.RotationOrder(roster, state.NextPayoutIndex)
	return state.NextPayoutIndex, slots, nil
}

func (s *rotationService) AdvancePayout(ctx context.Context, actorID string) (*domain.PoolState, error) {
	if err := s.AuthorizeAdmin(ctx, actorID); err != nil {
		s.LogError(ctx, err, "User not authorized to advance payout",
			slog.String("user_id", actorID))
		return nil, err
	}

	roster, err := s.memberRepo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.poolRepo.GetPoolState(ctx)
	if err != nil {
		return nil, err
	}

	previous := state.NextPayoutIndex
	state.NextPayoutIndex = ledger.NextIndexAfterPayout(state.NextPayoutIndex, len(roster))
	state.LastUpdatedAt = time.Now().UTC()

	if err := s.poolRepo.UpdatePoolState(ctx, *state); err != nil {
		s.LogError(ctx, err, "Failed to persist advanced payout index")
		return nil, err
	}

	s.readCache.Invalidate(cache.KeyPoolState)

	s.LogInfo(ctx, "Payout index advanced",
		slog.Int("from", previous),
		slog.Int("to", state.NextPayoutIndex))
	return state, nil
}

// poolService reads the singleton pool state through the shared cache.
type poolService struct {
	BaseService
	poolRepo  portsrepo.PoolStateRepositoryFacade
	readCache *cache.TableCache
}

// NewPoolService creates a new pool-state reader service.
func NewPoolService(poolRepo portsrepo.PoolStateRepositoryFacade, readCache *cache.TableCache) portssvc.PoolSvcFacade {
	return &poolService{poolRepo: poolRepo, readCache: readCache}
}

var _ portssvc.PoolSvcFacade = (*poolService)(nil)

func (s *poolService) GetPoolState(ctx context.Context) (*domain.PoolState, error) {
	if cached, ok := s.readCache.Get(cache.KeyPoolState); ok {
		if state, ok := cached.(*domain.PoolState); ok {
			return state, nil
		}
	}

	state, err := s.poolRepo.GetPoolState(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load pool state")
		return nil, err
	}

	s.readCache.Set(cache.KeyPoolState, state)
	return state, nil
}
