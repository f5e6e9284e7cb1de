package mapping

import (
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/klinikore/klinik-ledger/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		AppliesTo:   string(d.AppliesTo),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		AppliesTo:   domain.TransactionType(m.AppliesTo),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		TaxID:       d.TaxID,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		TaxID:       m.TaxID,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPatient converts a model Patient to a domain Patient
func ToDomainPatient(m models.Patient) domain.Patient {
	return domain.Patient{
		PatientID: m.PatientID,
		FullName:  m.FullName,
	}
}
