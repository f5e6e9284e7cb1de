package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo)
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_AsOf() {
	ctx := context.Background()
	accountID := uuid.NewString()
	asOf := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	account := &domain.Account{AccountID: accountID, Kind: domain.Cash, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockReportingRepo.On("GetAccountBalanceAsOf", ctx, accountID, asOf).Return(decimal.NewFromInt(730), nil).Once()

	balance, err := suite.service.AccountBalance(ctx, accountID, &asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(730)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_AccountMissing() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AccountBalance(ctx, accountID, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetAccountBalanceAsOf", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestSummary_InvertedRange() {
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -10)

	_, err := suite.service.Summary(ctx, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetSummaryData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestSummary_Success() {
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	expected := &domain.FinanceSummary{
		TotalIncome:  decimal.NewFromInt(12000),
		TotalExpense: decimal.NewFromInt(4000),
		Net:          decimal.NewFromInt(8000),
		OverdueCount: 2,
	}

	suite.mockReportingRepo.On("GetSummaryData", ctx, from, to, mock.AnythingOfType("time.Time")).Return(expected, nil).Once()

	summary, err := suite.service.Summary(ctx, from, to)

	suite.Require().NoError(err)
	suite.True(summary.Net.Equal(decimal.NewFromInt(8000)))
	suite.Equal(2, summary.OverdueCount)
}

func (suite *ReportingServiceTestSuite) TestDebtorsByPatient_NegativeMinDebtClampedToZero() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetPatientDebtors", ctx, decimal.Zero).Return([]domain.PatientDebt{}, nil).Once()

	debtors, err := suite.service.DebtorsByPatient(ctx, decimal.NewFromInt(-5))

	suite.Require().NoError(err)
	suite.NotNil(debtors)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_DefaultsToTwelve() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetMonthlySummary", ctx, 12, mock.AnythingOfType("time.Time")).Return([]domain.MonthlySummary{}, nil).Once()

	_, err := suite.service.MonthlySummary(ctx, 0)

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_TooManyMonths() {
	ctx := context.Background()

	_, err := suite.service.MonthlySummary(ctx, 61)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
