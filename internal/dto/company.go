package dto

import (
	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to register a supplier company.
type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	TaxID   string `json:"tax_id"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateCompanyRequest defines the fields allowed to change on a company.
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	TaxID   *string `json:"tax_id"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID string `json:"id"`
	Name      string `json:"name"`
	TaxID     string `json:"tax_id,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ListCompaniesParams defines query parameters for listing companies.
type ListCompaniesParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
	}
}

// ToCompanyResponses converts a slice of domain companies.
func ToCompanyResponses(cs []domain.Company) []CompanyResponse {
	res := make([]CompanyResponse, len(cs))
	for i := range cs {
		res[i] = ToCompanyResponse(&cs[i])
	}
	return res
}
