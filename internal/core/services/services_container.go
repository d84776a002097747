package services

import (
	"github.com/Marceldinga/The-young-shall-grow/internal/cache"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, readCache *cache.TableCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Auth first; it doubles as the admin authorizer for the other services.
	auth := NewAuthService(cfg, repos.ProfileRepo)
	container.Auth = auth
	container.Token = auth

	container.Member = NewMemberService(
		repos.MemberRepo,
		WithMemberAuthorizer(auth),
		WithMemberHistoryWriter(repos.HistoryRepo),
		WithMemberReadCache(readCache),
	)

	container.History = NewHistoryService(repos.HistoryRepo, readCache)

	container.Reconciliation = NewReconciliationService(
		repos.MemberRepo,
		repos.HistoryRepo,
		WithReconciliationAuthorizer(auth),
		WithReconciliationReadCache(readCache),
	)

	container.Recorder = NewRecorderService(
		repos.MemberRepo,
		repos.HistoryRepo,
		repos.PoolStateRepo,
		repos.FineRepo,
		WithRecorderAuthorizer(auth),
		WithRecorderReadCache(readCache),
	)

	container.Rotation = NewRotationService(
		repos.MemberRepo,
		repos.PoolStateRepo,
		WithRotationAuthorizer(auth),
		WithRotationReadCache(readCache),
	)

	container.Pool = NewPoolService(repos.PoolStateRepo, readCache)

	container.Reporting = NewReportingService(container.Member, repos.PoolStateRepo, repos.FineRepo)

	return container
}
