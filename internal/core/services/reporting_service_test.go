package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Marceldinga/The-young-shall-grow/internal/core/domain"
	portssvc "github.com/Marceldinga/The-young-shall-grow/internal/core/ports/services"
	"github.com/Marceldinga/The-young-shall-grow/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockMemberReader is a mock type for the MemberReaderSvc interface
type MockMemberReader struct {
	mock.Mock
}

func (m *MockMemberReader) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberReader) ListMembers(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockMembers  *MockMemberReader
	mockPoolRepo *MockPoolStateRepository
	mockFineRepo *MockFineRepository
	service      portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockMembers = new(MockMemberReader)
	suite.mockPoolRepo = new(MockPoolStateRepository)
	suite.mockFineRepo = new(MockFineRepository)
	suite.service = services.NewReportingService(suite.mockMembers, suite.mockPoolRepo, suite.mockFineRepo)
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_IncludesFineCount() {
	ctx := context.Background()

	roster := []domain.Member{
		{MemberID: "m1", Name: "Ngwa", Position: 0, Contributed: decimal.NewFromInt(500), LoanDue: decimal.NewFromInt(100)},
		{MemberID: "m2", Name: "Abanda", Position: 1, Contributed: decimal.NewFromInt(300)},
	}
	suite.mockMembers.On("ListMembers", ctx).Return(roster, nil).Once()
	suite.mockPoolRepo.On("GetPoolState", ctx).Return(&domain.PoolState{
		Foundation:      decimal.NewFromInt(800),
		NextPayoutIndex: 1,
		LastUpdatedAt:   time.Now().UTC(),
	}, nil).Once()
	suite.mockFineRepo.On("CountFines", ctx).Return(3, nil).Once()

	summary, err := suite.service.DashboardSummary(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Equal(2, summary.MemberCount)
	suite.Equal(3, summary.FineCount)
	suite.True(summary.TotalContributed.Equal(decimal.NewFromInt(800)))
	suite.True(summary.TotalLoanDue.Equal(decimal.NewFromInt(100)))
	suite.Require().NotNil(summary.NextPayoutMember)
	suite.Equal("Abanda", summary.NextPayoutMember.Name)
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_FineCountFailureSurfaces() {
	ctx := context.Background()

	suite.mockMembers.On("ListMembers", ctx).Return([]domain.Member{}, nil).Once()
	suite.mockPoolRepo.On("GetPoolState", ctx).Return(&domain.PoolState{}, nil).Once()
	suite.mockFineRepo.On("CountFines", ctx).Return(0, errors.New("connection reset")).Once()

	summary, err := suite.service.DashboardSummary(ctx)

	suite.Require().Error(err)
	suite.Nil(summary)
}

func (suite *ReportingServiceTestSuite) TestListFines_Passthrough() {
	ctx := context.Background()

	suite.mockFineRepo.On("ListFines", ctx).Return([]domain.Fine{
		{FineID: "f2", MemberName: "Ngwa", Amount: decimal.NewFromInt(25), Reason: "late meeting"},
		{FineID: "f1", MemberName: "Abanda", Amount: decimal.NewFromInt(10)},
	}, nil).Once()

	fines, err := suite.service.ListFines(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(fines, 2)
	suite.Equal("f2", fines[0].FineID)
	suite.Equal("late meeting", fines[0].Reason)
	suite.True(fines[1].Amount.Equal(decimal.NewFromInt(10)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
