package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	"github.com/klinikore/klinik-ledger/internal/models"
	"github.com/klinikore/klinik-ledger/internal/utils/mapping"
)

const companyColumns = `company_id, name, tax_id, phone, email, address, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func scanCompanyRow(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.TaxID,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCompany inserts a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)

	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.TaxID, m.Phone, m.Email, m.Address, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: company %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save company %s: %w", m.CompanyID, err)
	}
	return nil
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`

	m, err := scanCompanyRow(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}

	d := mapping.ToDomainCompany(m)
	return &d, nil
}

// ListCompanies retrieves a page of companies ordered by name.
func (r *PgxCompanyRepository) ListCompanies(ctx context.Context, limit int, offset int) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		m, err := scanCompanyRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, mapping.ToDomainCompany(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", rows.Err())
	}

	return companies, nil
}

// UpdateCompany updates an existing company.
func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)

	query := `
		UPDATE companies
		SET name = $2, tax_id = $3, phone = $4, email = $5, address = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE company_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.TaxID, m.Phone, m.Email, m.Address, m.Notes,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", m.CompanyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, m.CompanyID)
	}
	return nil
}

// PgxPatientDirectory reads the patients table maintained by the clinical
// side. Name resolution only; the ledger never writes patient rows.
type PgxPatientDirectory struct {
	BaseRepository
}

// newPgxPatientDirectory creates a read-only patient directory.
func newPgxPatientDirectory(pool *pgxpool.Pool) portsrepo.PatientDirectory {
	return &PgxPatientDirectory{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PatientDirectory = (*PgxPatientDirectory)(nil)

// FindPatientByID resolves one patient.
func (r *PgxPatientDirectory) FindPatientByID(ctx context.Context, patientID string) (*domain.Patient, error) {
	query := `SELECT patient_id, full_name FROM patients WHERE patient_id = $1;`

	var m models.Patient
	if err := r.Pool.QueryRow(ctx, query, patientID).Scan(&m.PatientID, &m.FullName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: patient %s", apperrors.ErrNotFound, patientID)
		}
		return nil, fmt.Errorf("failed to find patient by ID %s: %w", patientID, err)
	}

	d := mapping.ToDomainPatient(m)
	return &d, nil
}

// FindPatientsByIDs resolves multiple patients keyed by ID.
func (r *PgxPatientDirectory) FindPatientsByIDs(ctx context.Context, patientIDs []string) (map[string]domain.Patient, error) {
	if len(patientIDs) == 0 {
		return map[string]domain.Patient{}, nil
	}

	query := `SELECT patient_id, full_name FROM patients WHERE patient_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, patientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients by IDs: %w", err)
	}
	defer rows.Close()

	patients := make(map[string]domain.Patient)
	for rows.Next() {
		var m models.Patient
		if err := rows.Scan(&m.PatientID, &m.FullName); err != nil {
			return nil, fmt.Errorf("failed to scan patient row: %w", err)
		}
		patients[m.PatientID] = mapping.ToDomainPatient(m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating patient rows: %w", rows.Err())
	}

	return patients, nil
}
