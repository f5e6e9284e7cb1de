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

type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany registers a supplier counterparty.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name cannot be empty", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      name,
		TaxID:     req.TaxID,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Notes:     req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID), slog.String("name", name))
	return &company, nil
}

// GetCompanyByID retrieves a company by its ID.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

// ListCompanies retrieves a page of companies ordered by name.
func (s *companyService) ListCompanies(ctx context.Context, params dto.ListCompaniesParams) ([]domain.Company, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	companies, err := s.companyRepo.ListCompanies(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve companies: %w", err)
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	return companies, nil
}

// UpdateCompany applies the provided changes to a company.
func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: company name cannot be empty", apperrors.ErrValidation)
		}
		company.Name = name
	}
	if req.TaxID != nil {
		company.TaxID = *req.TaxID
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Notes != nil {
		company.Notes = *req.Notes
	}
	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = userID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		logger.Error("Failed to update company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}
