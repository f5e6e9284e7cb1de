package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is the transfers table row.
type Transfer struct {
	TransferID    string          `db:"transfer_id"`
	FromAccountID string          `db:"from_account_id"`
	ToAccountID   string          `db:"to_account_id"`
	Amount        decimal.Decimal `db:"amount"`
	Note          string          `db:"note"`
	OccurredAt    time.Time       `db:"occurred_at"`
	AuditFields
}
