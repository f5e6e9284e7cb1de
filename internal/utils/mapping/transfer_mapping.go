package mapping

import (
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/klinikore/klinik-ledger/internal/models"
)

// ToModelTransfer converts a domain Transfer to a model Transfer
func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		TransferID:    d.TransferID,
		FromAccountID: d.FromAccountID,
		ToAccountID:   d.ToAccountID,
		Amount:        d.Amount,
		Note:          d.Note,
		OccurredAt:    d.OccurredAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransfer converts a model Transfer to a domain Transfer
func ToDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		TransferID:    m.TransferID,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		Amount:        m.Amount,
		Note:          m.Note,
		OccurredAt:    m.OccurredAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
