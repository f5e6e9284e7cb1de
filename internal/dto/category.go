package dto

import (
	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name      string                 `json:"name" binding:"required"`
	AppliesTo domain.TransactionType `json:"applies_to" binding:"required,oneof=INCOME EXPENSE"`
}

// UpdateCategoryRequest defines the fields allowed to change on a category.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"active"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string                 `json:"id"`
	Name       string                 `json:"name"`
	AppliesTo  domain.TransactionType `json:"applies_to"`
	IsActive   bool                   `json:"active"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	AppliesTo       *domain.TransactionType `form:"applies_to" binding:"omitempty,oneof=INCOME EXPENSE"`
	IncludeInactive bool                    `form:"include_inactive,default=false"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		AppliesTo:  c.AppliesTo,
		IsActive:   c.IsActive,
	}
}

// ToCategoryResponses converts a slice of domain categories.
func ToCategoryResponses(cs []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(cs))
	for i := range cs {
		res[i] = ToCategoryResponse(&cs[i])
	}
	return res
}
