package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer moves funds between two distinct accounts as a single atomic
// unit. It produces exactly two movements: an OUT on the source and an IN on
// the destination, both linked back to the transfer. Either both movements
// exist or neither does.
type Transfer struct {
	TransferID    string          `json:"transferID"`
	FromAccountID string          `json:"fromAccountID"`
	ToAccountID   string          `json:"toAccountID"`
	Amount        decimal.Decimal `json:"amount"` // Always positive
	Note          string          `json:"note"`
	OccurredAt    time.Time       `json:"occurredAt"`
	AuditFields
}
