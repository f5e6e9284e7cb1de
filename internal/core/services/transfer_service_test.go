package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/core/services"
)

type TransferServiceTestSuite struct {
	suite.Suite
	mockTransferRepo *MockTransferRepository
	mockAccountRepo  *MockAccountRepository
	mockMovementRepo *MockMovementRepository
	service          portssvc.TransferSvcFacade

	fromID string
	toID   string
	userID string
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.service = services.NewTransferService(suite.mockTransferRepo, suite.mockAccountRepo, suite.mockMovementRepo)

	suite.fromID = uuid.NewString()
	suite.toID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TransferServiceTestSuite) bothAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		suite.fromID: {AccountID: suite.fromID, Name: "Ana Kasa", Kind: domain.Cash, IsActive: true},
		suite.toID:   {AccountID: suite.toID, Name: "Banka Vadesiz", Kind: domain.Bank, IsActive: true},
	}
}

func (suite *TransferServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(1200)

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.fromID, suite.toID}).Return(suite.bothAccounts(), nil).Once()

	var capturedOut, capturedIn domain.Movement
	suite.mockTransferRepo.On("SaveTransfer", ctx, mock.AnythingOfType("domain.Transfer"), mock.AnythingOfType("domain.Movement"), mock.AnythingOfType("domain.Movement")).
		Run(func(args mock.Arguments) {
			capturedOut = args.Get(2).(domain.Movement)
			capturedIn = args.Get(3).(domain.Movement)
		}).
		Return(&domain.Movement{Direction: domain.Out}, &domain.Movement{Direction: domain.In}, nil).Once()

	transfer, out, in, err := suite.service.Transfer(ctx, suite.fromID, suite.toID, amount, "", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(transfer)
	suite.Equal(suite.fromID, transfer.FromAccountID)
	suite.Equal(suite.toID, transfer.ToAccountID)
	suite.True(transfer.Amount.Equal(amount))

	suite.Equal(domain.Out, capturedOut.Direction)
	suite.Equal(suite.fromID, capturedOut.AccountID)
	suite.Equal(domain.In, capturedIn.Direction)
	suite.Equal(suite.toID, capturedIn.AccountID)
	suite.True(capturedOut.Amount.Equal(capturedIn.Amount))
	suite.Require().NotNil(capturedOut.TransferID)
	suite.Equal(transfer.TransferID, *capturedOut.TransferID)
	// Default description names both accounts.
	suite.Contains(capturedOut.Description, "Ana Kasa")
	suite.Contains(capturedOut.Description, "Banka Vadesiz")

	suite.Equal(domain.Out, out.Direction)
	suite.Equal(domain.In, in.Direction)
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestTransfer_NotePreserved() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.fromID, suite.toID}).Return(suite.bothAccounts(), nil).Once()

	var capturedOut domain.Movement
	suite.mockTransferRepo.On("SaveTransfer", ctx, mock.AnythingOfType("domain.Transfer"), mock.AnythingOfType("domain.Movement"), mock.AnythingOfType("domain.Movement")).
		Run(func(args mock.Arguments) {
			capturedOut = args.Get(2).(domain.Movement)
		}).
		Return(&domain.Movement{}, &domain.Movement{}, nil).Once()

	_, _, _, err := suite.service.Transfer(ctx, suite.fromID, suite.toID, decimal.NewFromInt(50), "Gun sonu devir", suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Gun sonu devir", capturedOut.Description)
}

func (suite *TransferServiceTestSuite) TestTransfer_SameAccount() {
	ctx := context.Background()

	_, _, _, err := suite.service.Transfer(ctx, suite.fromID, suite.fromID, decimal.NewFromInt(100), "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrSameAccountTransfer)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransfer_NonPositiveAmount() {
	ctx := context.Background()

	_, _, _, err := suite.service.Transfer(ctx, suite.fromID, suite.toID, decimal.Zero, "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestTransfer_DestinationMissing() {
	ctx := context.Background()
	onlyFrom := map[string]domain.Account{
		suite.fromID: {AccountID: suite.fromID, Kind: domain.Cash, IsActive: true},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.fromID, suite.toID}).Return(onlyFrom, nil).Once()

	_, _, _, err := suite.service.Transfer(ctx, suite.fromID, suite.toID, decimal.NewFromInt(100), "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransfer_InactiveAccount() {
	ctx := context.Background()
	accounts := suite.bothAccounts()
	inactive := accounts[suite.toID]
	inactive.IsActive = false
	accounts[suite.toID] = inactive

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.fromID, suite.toID}).Return(accounts, nil).Once()

	_, _, _, err := suite.service.Transfer(ctx, suite.fromID, suite.toID, decimal.NewFromInt(100), "", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestGetTransferByID_Success() {
	ctx := context.Background()
	transferID := uuid.NewString()
	transfer := &domain.Transfer{
		TransferID:    transferID,
		FromAccountID: suite.fromID,
		ToAccountID:   suite.toID,
		Amount:        decimal.NewFromInt(700),
	}
	legs := []domain.Movement{
		{MovementID: uuid.NewString(), AccountID: suite.toID, Direction: domain.In, Amount: decimal.NewFromInt(700), TransferID: &transferID},
		{MovementID: uuid.NewString(), AccountID: suite.fromID, Direction: domain.Out, Amount: decimal.NewFromInt(700), TransferID: &transferID},
	}

	suite.mockTransferRepo.On("FindTransferByID", ctx, transferID).Return(transfer, nil).Once()
	suite.mockMovementRepo.On("FindMovementsByTransferID", ctx, transferID).Return(legs, nil).Once()

	got, out, in, err := suite.service.GetTransferByID(ctx, transferID)

	suite.Require().NoError(err)
	suite.Equal(transferID, got.TransferID)
	suite.Require().NotNil(out)
	suite.Require().NotNil(in)
	suite.Equal(domain.Out, out.Direction)
	suite.Equal(suite.fromID, out.AccountID)
	suite.Equal(domain.In, in.Direction)
	suite.Equal(suite.toID, in.AccountID)
}

func (suite *TransferServiceTestSuite) TestGetTransferByID_NotFound() {
	ctx := context.Background()
	transferID := uuid.NewString()

	suite.mockTransferRepo.On("FindTransferByID", ctx, transferID).
		Return(nil, fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)).Once()

	_, _, _, err := suite.service.GetTransferByID(ctx, transferID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "FindMovementsByTransferID", mock.Anything, mock.Anything)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
