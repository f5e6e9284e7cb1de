package mapping

import (
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/klinikore/klinik-ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		ReferenceCode: d.ReferenceCode,
		Type:          string(d.Type),
		Status:        string(d.Status),
		GrossAmount:   d.GrossAmount,
		NetAmount:     d.NetAmount,
		CategoryID:    d.CategoryID,
		PatientID:     d.PatientID,
		CompanyID:     d.CompanyID,
		Description:   d.Description,
		DueDate:       d.DueDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		ReferenceCode: m.ReferenceCode,
		Type:          domain.TransactionType(m.Type),
		Status:        domain.TransactionStatus(m.Status),
		GrossAmount:   m.GrossAmount,
		NetAmount:     m.NetAmount,
		CategoryID:    m.CategoryID,
		PatientID:     m.PatientID,
		CompanyID:     m.CompanyID,
		Description:   m.Description,
		DueDate:       m.DueDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:     d.PaymentID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Amount:        d.Amount,
		Method:        string(d.Method),
		PaidAt:        d.PaidAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:     m.PaymentID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Amount:        m.Amount,
		Method:        domain.PaymentMethod(m.Method),
		PaidAt:        m.PaidAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
