package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDirection indicates whether a movement adds money to or removes
// money from its account.
type MovementDirection string

const (
	In  MovementDirection = "IN"
	Out MovementDirection = "OUT"
)

// Movement is one immutable balance-affecting event (hareket) on an account.
// Movements are never edited or deleted; corrections are posted as new
// offsetting movements. Only the transaction ledger and the transfer engine
// create them.
type Movement struct {
	MovementID       string            `json:"movementID"`
	AccountID        string            `json:"accountID"`
	Direction        MovementDirection `json:"direction"`
	Amount           decimal.Decimal   `json:"amount"` // Always positive
	ResultingBalance decimal.Decimal   `json:"resultingBalance"`
	Description      string            `json:"description"`
	OccurredAt       time.Time         `json:"occurredAt"`
	TransactionID    *string           `json:"transactionID,omitempty"` // Set when posted by the transaction ledger
	TransferID       *string           `json:"transferID,omitempty"`    // Set when posted by the transfer engine
	AuditFields
}

// SignedAmount returns the amount with the sign implied by the direction.
func (m Movement) SignedAmount() decimal.Decimal {
	if m.Direction == Out {
		return m.Amount.Neg()
	}
	return m.Amount
}
