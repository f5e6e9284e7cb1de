package services

import (
	"context"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/klinikore/klinik-ledger/internal/dto"
)

// CategorySvcFacade manages the income/expense category taxonomy.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error)

	// DeleteCategory removes an unreferenced category; a category still in
	// use by transactions is refused with a conflict.
	DeleteCategory(ctx context.Context, categoryID string, userID string) error
}
