package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/dto"
	"github.com/klinikore/klinik-ledger/internal/middleware"
)

type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory creates a new category in the taxonomy.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
	}
	if !req.AppliesTo.Valid() {
		return nil, fmt.Errorf("%w: invalid transaction type %q", apperrors.ErrValidation, req.AppliesTo)
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       name,
		AppliesTo:  req.AppliesTo,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("name", name))
	return &category, nil
}

// GetCategoryByID retrieves a category by its ID.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

// ListCategories retrieves categories, optionally filtered by transaction type.
func (s *categoryService) ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, params.AppliesTo, params.IncludeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// UpdateCategory applies the provided changes to a category. The applies_to
// classification is fixed at creation and cannot change.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
		}
		category.Name = name
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes an unreferenced category. A category still in use by
// transactions is never deleted; it is deactivated instead and the caller gets
// a conflict so the ledger's historical classifications stay resolvable.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountTransactionsByCategory(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to count category usage: %w", err)
	}
	if count > 0 {
		if err := s.categoryRepo.DeactivateCategory(ctx, categoryID, userID, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to deactivate category: %w", err)
		}
		logger.Info("Category deactivated instead of deleted", slog.String("category_id", categoryID), slog.Int("transaction_count", count))
		return fmt.Errorf("%w: category is used by %d transactions and was deactivated instead", apperrors.ErrConflict, count)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		logger.Error("Failed to delete category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	logger.Info("Category deleted", slog.String("category_id", categoryID))
	return nil
}
