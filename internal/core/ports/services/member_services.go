package services

import (
	"context"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	"github.com/Marceldinga/The-young-shall-grow/internal/dto"
)

// MemberReaderSvc defines read operations for the roster.
type MemberReaderSvc interface {
	// GetMemberByID retrieves a specific member by its unique identifier.
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// ListMembers retrieves the full roster ordered by rotation position.
	ListMembers(ctx context.Context) ([]domain.Member, error)
}

// MemberWriterSvc defines write operations for the roster.
type MemberWriterSvc interface {
	// CreateMember registers a new member and appends a member_added
	// history event (best-effort).
	CreateMember(ctx context.Context, req dto.CreateMemberRequest, creatorUserID string) (*domain.Member, error)

	// UpdateMember updates a member's display name or rotation position.
	UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, userID string) (*domain.Member, error)
}

// MemberSvcFacade combines all member-related service interfaces.
type MemberSvcFacade interface {
	MemberReaderSvc
	MemberWriterSvc
}
