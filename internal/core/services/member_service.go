package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	"github.com/Marceldinga/The-young-shall-grow/internal/cache"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portsrepo "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/repositories"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memberService implements the MemberSvcFacade interface
type memberService struct {
	BaseService
	memberRepo  portsrepo.MemberRepositoryFacade
	historyRepo portsrepo.HistoryWriter
	readCache   *cache.TableCache
}

// MemberServiceOption is a functional option for configuring the member service
type MemberServiceOption func(*memberService)

// WithMemberAuthorizer adds the admin authorizer dependency
func WithMemberAuthorizer(authorizer AdminAuthorizer) MemberServiceOption {
	return func(s *memberService) {
		s.Authorizer = authorizer
	}
}

// WithMemberHistoryWriter adds the history writer used for member_added events
func WithMemberHistoryWriter(w portsrepo.HistoryWriter) MemberServiceOption {
	return func(s *memberService) {
		s.historyRepo = w
	}
}

// WithMemberReadCache adds the shared read cache
func WithMemberReadCache(c *cache.TableCache) MemberServiceOption {
	return func(s *memberService) {
		s.readCache = c
	}
}

// NewMemberService creates a new member service with the provided options
func NewMemberService(repo portsrepo.MemberRepositoryFacade, options ...MemberServiceOption) portssvc.MemberSvcFacade {
	svc := &memberService{memberRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

func (s *memberService) CreateMember(ctx context.Context, req dto.CreateMemberRequest, creatorUserID string) (*domain.Member, error) {
	if err := s.AuthorizeAdmin(ctx, creatorUserID); err != nil {
		s.LogError(ctx, err, "User not authorized to create member",
			slog.String("user_id", creatorUserID))
		return nil, err
	}

	if existing, err := s.memberRepo.FindMemberByName(ctx, req.Name); err == nil && existing != nil {
		err := apperrors.ErrDuplicate
		s.LogError(ctx, err, "Member name already taken", slog.String("name", req.Name))
		return nil, fmt.Errorf("member %q already exists: %w", req.Name, err)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	member := domain.Member{
		MemberID:          uuid.NewString(),
		Name:              req.Name,
		Position:          req.Position,
		Contributed:       decimal.Zero,
		FoundationContrib: decimal.Zero,
		LoanDue:           decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to save member", slog.String("member_id", member.MemberID))
		return nil, err
	}

	// The member_added event is a bookkeeping note, not part of the ledger
	// fold; failing to write it does not undo the roster insert.
	if s.historyRepo != nil {
		event := domain.HistoryEvent{
			EventID:    uuid.NewString(),
			Type:       domain.EventMemberAdded,
			MemberName: member.Name,
			Amount:     decimal.Zero,
			CreatedAt:  now,
		}
		if err := s.historyRepo.AppendEvent(ctx, event); err != nil {
			s.LogWarn(ctx, "Failed to append member_added history event",
				slog.String("member_id", member.MemberID),
				slog.String("error", err.Error()))
		}
	}

	s.readCache.Invalidate(cache.KeyMembers)
	s.readCache.InvalidatePrefix(cache.KeyHistory)

	s.LogInfo(ctx, "Member created successfully",
		slog.String("member_id", member.MemberID),
		slog.Int("position", member.Position))
	return &member, nil
}

func (s *memberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find member by ID", slog.String("member_id", memberID))
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	if cached, ok := s.readCache.Get(cache.KeyMembers); ok {
		if members, ok := cached.([]domain.Member); ok {
			return members, nil
		}
	}

	members, err := s.memberRepo.ListMembers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members")
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	if members == nil {
		members = []domain.Member{}
	}

	s.readCache.Set(cache.KeyMembers, members)
	return members, nil
}

func (s *memberService) UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, userID string) (*domain.Member, error) {
	if err := s.AuthorizeAdmin(ctx, userID); err != nil {
		s.LogError(ctx, err, "User not authorized to update member",
			slog.String("user_id", userID), slog.String("member_id", memberID))
		return nil, err
	}

	member, err := s.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		member.Name = *req.Name
		updated = true
	}
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, fmt.Errorf("position must not be negative: %w", apperrors.ErrValidation)
		}
		member.Position = *req.Position
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for member update", slog.String("member_id", memberID))
		return member, nil
	}

	now := time.Now().UTC()
	member.LastUpdatedAt = now
	member.LastUpdatedBy = userID

	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		s.LogError(ctx, err, "Failed to update member", slog.String("member_id", memberID))
		return nil, err
	}

	s.readCache.Invalidate(cache.KeyMembers)

	s.LogInfo(ctx, "Member updated successfully", slog.String("member_id", memberID))
	return member, nil
}
