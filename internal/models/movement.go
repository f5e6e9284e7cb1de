package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement is the movements table row. Rows are append-only.
type Movement struct {
	MovementID       string          `db:"movement_id"`
	AccountID        string          `db:"account_id"`
	Direction        string          `db:"direction"` // IN or OUT
	Amount           decimal.Decimal `db:"amount"`
	ResultingBalance decimal.Decimal `db:"resulting_balance"`
	Description      string          `db:"description"`
	OccurredAt       time.Time       `db:"occurred_at"`
	TransactionID    *string         `db:"transaction_id"` // Nullable
	TransferID       *string         `db:"transfer_id"`    // Nullable
	AuditFields
}
