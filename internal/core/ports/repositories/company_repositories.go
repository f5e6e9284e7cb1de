package repositories

import (
	"context"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// CompanyRepositoryFacade defines storage operations for counterparty companies.
type CompanyRepositoryFacade interface {
	SaveCompany(ctx context.Context, company domain.Company) error
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompanies(ctx context.Context, limit int, offset int) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, company domain.Company) error
}

// PatientDirectory resolves patient names for debtor reports. The patients
// table is owned by the clinical side; the ledger never writes it.
type PatientDirectory interface {
	FindPatientByID(ctx context.Context, patientID string) (*domain.Patient, error)
	FindPatientsByIDs(ctx context.Context, patientIDs []string) (map[string]domain.Patient, error)
}
