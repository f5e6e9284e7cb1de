package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/core/services"
	"github.com/klinikore/klinik-ledger/internal/dto"
	"github.com/klinikore/klinik-ledger/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateUserRequest{
		Username: " Resepsiyon ",
		Name:     "Resepsiyon",
		Password: "uzun-ve-guvenli",
	}

	suite.mockRepo.On("FindUserByUsername", ctx, "resepsiyon").Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Equal("resepsiyon", user.Username)
	suite.True(user.IsActive)
	suite.NotEqual("uzun-ve-guvenli", saved.PasswordHash)
	suite.True(utils.CheckPasswordHash("uzun-ve-guvenli", saved.PasswordHash))
	suite.Equal(creatorUserID, saved.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Username: "resepsiyon", IsActive: true}
	req := dto.CreateUserRequest{
		Username: "resepsiyon",
		Name:     "Baska Biri",
		Password: "uzun-ve-guvenli",
	}

	suite.mockRepo.On("FindUserByUsername", ctx, "resepsiyon").Return(existing, nil).Once()

	_, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
