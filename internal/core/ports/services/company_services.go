package services

import (
	"context"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/klinikore/klinik-ledger/internal/dto"
)

// CompanySvcFacade manages supplier counterparty companies.
type CompanySvcFacade interface {
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context, params dto.ListCompaniesParams) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error)
}
