package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// TransferRequest defines the data needed to move funds between two accounts.
// The source account comes from the URL path.
type TransferRequest struct {
	ToAccountID string          `json:"to_account_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Note        string          `json:"note"`
}

// TransferResponse returns the transfer and its two movement legs.
type TransferResponse struct {
	TransferID    string           `json:"id"`
	FromAccountID string           `json:"from_account_id"`
	ToAccountID   string           `json:"to_account_id"`
	Amount        decimal.Decimal  `json:"amount"`
	Note          string           `json:"note,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
	MovementOut   MovementResponse `json:"movement_out"`
	MovementIn    MovementResponse `json:"movement_in"`
}

// ToTransferResponse converts a domain transfer with its movement legs.
func ToTransferResponse(t *domain.Transfer, out *domain.Movement, in *domain.Movement) TransferResponse {
	return TransferResponse{
		TransferID:    t.TransferID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Note:          t.Note,
		OccurredAt:    t.OccurredAt,
		MovementOut:   ToMovementResponse(out),
		MovementIn:    ToMovementResponse(in),
	}
}
