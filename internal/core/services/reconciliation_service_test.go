package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Marceldinga/The-young-shall-grow/internal/apperrors"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockHistoryRepository is a mock type for the HistoryRepositoryFacade interface
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) ListRawEvents(ctx context.Context) ([]map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockHistoryRepository) ListRawEventsRange(ctx context.Context, limit, offset int) ([]map[string]any, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockHistoryRepository) AppendEvent(ctx context.Context, event domain.HistoryEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockHistoryRepository) AppendEventInTx(ctx context.Context, tx pgx.Tx, event domain.HistoryEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockMemberRepo  *MockMemberRepository
	mockHistoryRepo *MockHistoryRepository
	mockAuthorizer  *MockAuthorizer
	service         portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockHistoryRepo = new(MockHistoryRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewReconciliationService(
		suite.mockMemberRepo,
		suite.mockHistoryRepo,
		services.WithReconciliationAuthorizer(suite.mockAuthorizer),
	)
}

func (suite *ReconciliationServiceTestSuite) roster() []domain.Member {
	return []domain.Member{
		{
			MemberID:    "m-1",
			Name:        "Ngwa",
			Position:    0,
			Contributed: decimal.NewFromInt(999), // stale; replay should fix it
		},
		{
			MemberID: "m-2",
			Name:     "Abanda",
			Position: 1,
			LoanDue:  decimal.NewFromInt(42),
		},
	}
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestPreview_RecomputesFromHistory() {
	ctx := context.Background()

	rows := []map[string]any{
		{"type": "contribution", "member": "Ngwa", "amount": 500.0, "created_at": "2024-01-01T10:00:00Z"},
		{"type": "loan", "member": "Abanda", "amount": 1000.0, "interest_percent": 5.0, "total_due": 1050.0, "created_at": "2024-01-02T10:00:00Z"},
		{"type": "repayment", "member": "Abanda", "amount": 50.0, "created_at": "2024-01-03T10:00:00Z"},
	}

	suite.mockMemberRepo.On("ListMembers", ctx).Return(suite.roster(), nil).Once()
	suite.mockHistoryRepo.On("ListRawEvents", ctx).Return(rows, nil).Once()

	report, err := suite.service.Preview(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.SchemaOK)
	suite.Require().Len(report.Members, 2)

	byID := map[string]domain.ReconciledMember{}
	for _, rm := range report.Members {
		byID[rm.Member.MemberID] = rm
	}
	suite.True(byID["m-1"].Proposed.Contributed.Equal(decimal.NewFromInt(500)))
	suite.True(byID["m-1"].Proposed.LoanDue.IsZero())
	suite.True(byID["m-2"].Proposed.LoanDue.Equal(decimal.NewFromInt(1000)))
	suite.True(byID["m-2"].Proposed.Contributed.IsZero())
}

func (suite *ReconciliationServiceTestSuite) TestPreview_SchemaInsufficientReturnsRosterUnchanged() {
	ctx := context.Background()

	// No member column under any known alias.
	rows := []map[string]any{
		{"type": "contribution", "amount": 500.0},
	}

	roster := suite.roster()
	suite.mockMemberRepo.On("ListMembers", ctx).Return(roster, nil).Once()
	suite.mockHistoryRepo.On("ListRawEvents", ctx).Return(rows, nil).Once()

	report, err := suite.service.Preview(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.False(report.SchemaOK)
	suite.Require().Len(report.Members, 2)
	// Proposed totals echo the stored aggregates.
	suite.True(report.Members[0].Proposed.Contributed.Equal(roster[0].Contributed))
	suite.True(report.Members[1].Proposed.LoanDue.Equal(roster[1].LoanDue))
}

func (suite *ReconciliationServiceTestSuite) TestApply_PersistsEveryMember() {
	ctx := context.Background()
	actorID := uuid.NewString()

	rows := []map[string]any{
		{"type": "contribution", "member": "Ngwa", "amount": 500.0},
	}

	suite.mockAuthorizer.On("RequireAdmin", ctx, actorID).Return(nil).Once()
	suite.mockMemberRepo.On("ListMembers", ctx).Return(suite.roster(), nil).Once()
	suite.mockHistoryRepo.On("ListRawEvents", ctx).Return(rows, nil).Once()
	suite.mockMemberRepo.On("UpdateLedgerTotals", ctx, "m-1", mock.AnythingOfType("domain.LedgerTotals"), actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockMemberRepo.On("UpdateLedgerTotals", ctx, "m-2", mock.AnythingOfType("domain.LedgerTotals"), actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	outcome, err := suite.service.Apply(ctx, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(outcome)
	suite.Equal(2, outcome.UpdatedCount)
	suite.Empty(outcome.Failures)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestApply_PartialFailureIsReportedNotRolledBack() {
	ctx := context.Background()
	actorID := uuid.NewString()

	rows := []map[string]any{
		{"type": "contribution", "member": "Ngwa", "amount": 500.0},
	}

	suite.mockAuthorizer.On("RequireAdmin", ctx, actorID).Return(nil).Once()
	suite.mockMemberRepo.On("ListMembers", ctx).Return(suite.roster(), nil).Once()
	suite.mockHistoryRepo.On("ListRawEvents", ctx).Return(rows, nil).Once()
	suite.mockMemberRepo.On("UpdateLedgerTotals", ctx, "m-1", mock.AnythingOfType("domain.LedgerTotals"), actorID, mock.AnythingOfType("time.Time")).Return(errors.New("connection reset")).Once()
	suite.mockMemberRepo.On("UpdateLedgerTotals", ctx, "m-2", mock.AnythingOfType("domain.LedgerTotals"), actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	outcome, err := suite.service.Apply(ctx, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(outcome)
	suite.Equal(1, outcome.UpdatedCount)
	suite.Require().Len(outcome.Failures, 1)
	suite.Equal("m-1", outcome.Failures[0].MemberID)
	suite.Equal("Ngwa", outcome.Failures[0].Name)
	suite.Contains(outcome.Failures[0].Reason, "connection reset")
}

func (suite *ReconciliationServiceTestSuite) TestApply_Forbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.mockAuthorizer.On("RequireAdmin", ctx, actorID).Return(apperrors.ErrForbidden).Once()

	outcome, err := suite.service.Apply(ctx, actorID)

	suite.Require().Error(err)
	suite.Nil(outcome)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "UpdateLedgerTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestApply_SchemaInsufficientWritesNothing() {
	ctx := context.Background()
	actorID := uuid.NewString()

	rows := []map[string]any{
		{"amount": 500.0},
	}

	suite.mockAuthorizer.On("RequireAdmin", ctx, actorID).Return(nil).Once()
	suite.mockMemberRepo.On("ListMembers", ctx).Return(suite.roster(), nil).Once()
	suite.mockHistoryRepo.On("ListRawEvents", ctx).Return(rows, nil).Once()

	outcome, err := suite.service.Apply(ctx, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(outcome)
	suite.Equal(0, outcome.UpdatedCount)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "UpdateLedgerTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Idempotence at the service level: two previews over the same history
// produce the same proposed totals.
func (suite *ReconciliationServiceTestSuite) TestPreview_Idempotent() {
	ctx := context.Background()

	rows := []map[string]any{
		{"type": "contribution", "member": "Ngwa", "amount": 350.0},
		{"type": "contribution", "member": "Ngwa", "amount": 150.0},
	}

	suite.mockMemberRepo.On("ListMembers", ctx).Return(suite.roster(), nil).Twice()
	suite.mockHistoryRepo.On("ListRawEvents", ctx).Return(rows, nil).Twice()

	first, err := suite.service.Preview(ctx)
	suite.Require().NoError(err)
	second, err := suite.service.Preview(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(first.Members, len(second.Members))
	for i := range first.Members {
		suite.True(first.Members[i].Proposed.Contributed.Equal(second.Members[i].Proposed.Contributed))
		suite.True(first.Members[i].Proposed.LoanDue.Equal(second.Members[i].Proposed.LoanDue))
	}
	suite.True(first.Members[0].Proposed.Contributed.Equal(decimal.NewFromInt(500)))
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
