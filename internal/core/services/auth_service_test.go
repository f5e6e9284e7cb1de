package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/core/services"
	"github.com/klinikore/klinik-ledger/internal/dto"
	"github.com/klinikore/klinik-ledger/internal/platform/config"
	"github.com/klinikore/klinik-ledger/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "klinik-ledger-test",
	}
	suite.service = services.NewAuthService(cfg, suite.mockUserRepo)
}

func (suite *AuthServiceTestSuite) activeUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       uuid.NewString(),
		Username:     "resepsiyon",
		Name:         "Resepsiyon",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse")

	suite.mockUserRepo.On("FindUserByUsername", ctx, "resepsiyon").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "  Resepsiyon ", Password: "correct-horse"})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.AccessToken)
	suite.Equal(user.UserID, resp.User.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse")

	suite.mockUserRepo.On("FindUserByUsername", ctx, "resepsiyon").Return(user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "resepsiyon", Password: "wrong"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "whatever"})

	suite.Require().Error(err)
	// Unknown user and wrong password produce the same error.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveUser() {
	ctx := context.Background()
	user := suite.activeUser("correct-horse")
	user.IsActive = false

	suite.mockUserRepo.On("FindUserByUsername", ctx, "resepsiyon").Return(user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "resepsiyon", Password: "correct-horse"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
