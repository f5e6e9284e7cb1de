package mapping

import (
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/klinikore/klinik-ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		Name:         d.Name,
		Kind:         models.AccountKind(d.Kind),
		CurrencyCode: d.CurrencyCode,
		BankName:     d.BankName,
		IsActive:     d.IsActive,
		Balance:      d.Balance,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		Name:         m.Name,
		Kind:         domain.AccountKind(m.Kind),
		CurrencyCode: m.CurrencyCode,
		BankName:     m.BankName,
		IsActive:     m.IsActive,
		Balance:      m.Balance,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
