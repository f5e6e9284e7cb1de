package mapping

import (
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/klinikore/klinik-ledger/internal/models"
)

// ToModelMovement converts a domain Movement to a model Movement
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:       d.MovementID,
		AccountID:        d.AccountID,
		Direction:        string(d.Direction),
		Amount:           d.Amount,
		ResultingBalance: d.ResultingBalance,
		Description:      d.Description,
		OccurredAt:       d.OccurredAt,
		TransactionID:    d.TransactionID,
		TransferID:       d.TransferID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMovement converts a model Movement to a domain Movement
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:       m.MovementID,
		AccountID:        m.AccountID,
		Direction:        domain.MovementDirection(m.Direction),
		Amount:           m.Amount,
		ResultingBalance: m.ResultingBalance,
		Description:      m.Description,
		OccurredAt:       m.OccurredAt,
		TransactionID:    m.TransactionID,
		TransferID:       m.TransferID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMovementSlice converts a slice of model Movements to domain Movements
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
