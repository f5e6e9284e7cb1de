package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	"github.com/klinikore/klinik-ledger/internal/models"
	"github.com/klinikore/klinik-ledger/internal/utils/mapping"
)

const categoryColumns = `category_id, name, applies_to, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategoryRow(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.AppliesTo,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.Name, m.AppliesTo, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategoryRow(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// ListCategories retrieves categories ordered by name, optionally filtered by
// the transaction type they apply to.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, appliesTo *domain.TransactionType, includeInactive bool) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE (is_active = TRUE OR $1)`
	args := []interface{}{includeInactive}
	if appliesTo != nil {
		query += ` AND applies_to = $2`
		args = append(args, string(*appliesTo))
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, err := scanCategoryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}

	return categories, nil
}

// UpdateCategory updates an existing category's name and active flag.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE category_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.CategoryID, m.Name, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, m.CategoryID)
	}
	return nil
}

// CountTransactionsByCategory reports how many transactions reference the category.
func (r *PgxCategoryRepository) CountTransactionsByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM transactions WHERE category_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for category %s: %w", categoryID, err)
	}
	return count, nil
}

// DeleteCategory hard-deletes an unreferenced category. Foreign key
// violations surface as conflicts in case a transaction slipped in between
// the caller's count and this delete.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	query := `DELETE FROM categories WHERE category_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: category %s is referenced by transactions", apperrors.ErrConflict, categoryID)
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	return nil
}

// DeactivateCategory soft-retires a category that is still referenced.
func (r *PgxCategoryRepository) DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error {
	query := `
		UPDATE categories
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE category_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, categoryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	return nil
}
