package repositories

import (
	"context"
	"time"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// CategoryRepositoryFacade defines storage operations for categories.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, appliesTo *domain.TransactionType, includeInactive bool) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error

	// CountTransactionsByCategory reports how many transactions reference the
	// category. Deletion is refused while the count is nonzero.
	CountTransactionsByCategory(ctx context.Context, categoryID string) (int, error)

	// DeleteCategory hard-deletes an unreferenced category.
	DeleteCategory(ctx context.Context, categoryID string) error

	// DeactivateCategory soft-retires a category that is still referenced.
	DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error
}
