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
)

type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvcFacade
	userID   string
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{
		Name:      "  Muayene  ",
		AppliesTo: domain.Income,
	}

	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(category)
	suite.Equal("Muayene", category.Name)
	suite.Equal(domain.Income, category.AppliesTo)
	suite.True(category.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_BlankName() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "   ", AppliesTo: domain.Income}

	_, err := suite.service.CreateCategory(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_InvalidAppliesTo() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Diger", AppliesTo: domain.TransactionType("BOTH")}

	_, err := suite.service.CreateCategory(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_RenameAndDeactivate() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	existing := &domain.Category{
		CategoryID: categoryID,
		Name:       "Muayene",
		AppliesTo:  domain.Income,
		IsActive:   true,
	}
	newName := "Kontrol Muayenesi"
	inactive := false
	req := dto.UpdateCategoryRequest{Name: &newName, IsActive: &inactive}

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID).Return(existing, nil).Once()

	var updated domain.Category
	suite.mockRepo.On("UpdateCategory", ctx, mock.AnythingOfType("domain.Category")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Category)
		}).Return(nil).Once()

	category, err := suite.service.UpdateCategory(ctx, categoryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Kontrol Muayenesi", category.Name)
	suite.False(category.IsActive)
	// applies_to never changes on update
	suite.Equal(domain.Income, updated.AppliesTo)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_UnreferencedIsDeleted() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	existing := &domain.Category{CategoryID: categoryID, Name: "Diger", AppliesTo: domain.Expense, IsActive: true}

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID).Return(existing, nil).Once()
	suite.mockRepo.On("CountTransactionsByCategory", ctx, categoryID).Return(0, nil).Once()
	suite.mockRepo.On("DeleteCategory", ctx, categoryID).Return(nil).Once()

	err := suite.service.DeleteCategory(ctx, categoryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_ReferencedIsDeactivated() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	existing := &domain.Category{CategoryID: categoryID, Name: "Muayene", AppliesTo: domain.Income, IsActive: true}

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID).Return(existing, nil).Once()
	suite.mockRepo.On("CountTransactionsByCategory", ctx, categoryID).Return(7, nil).Once()
	suite.mockRepo.On("DeactivateCategory", ctx, categoryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteCategory(ctx, categoryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_NotFound() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteCategory(ctx, categoryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
