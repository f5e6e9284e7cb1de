package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// MovementResponse defines the data returned for one account movement.
type MovementResponse struct {
	MovementID       string                   `json:"id"`
	AccountID        string                   `json:"account_id"`
	Direction        domain.MovementDirection `json:"direction"`
	Amount           decimal.Decimal          `json:"amount"`
	ResultingBalance decimal.Decimal          `json:"resulting_balance"`
	Description      string                   `json:"description"`
	OccurredAt       time.Time                `json:"occurred_at"`
	TransactionID    *string                  `json:"transaction_id,omitempty"`
	TransferID       *string                  `json:"transfer_id,omitempty"`
}

// ListMovementsParams defines query parameters for listing movements.
type ListMovementsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"next_token"`
}

// ListMovementsResponse wraps a page of movements, newest first.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"next_token,omitempty"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse.
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:       m.MovementID,
		AccountID:        m.AccountID,
		Direction:        m.Direction,
		Amount:           m.Amount,
		ResultingBalance: m.ResultingBalance,
		Description:      m.Description,
		OccurredAt:       m.OccurredAt,
		TransactionID:    m.TransactionID,
		TransferID:       m.TransferID,
	}
}

// ToMovementResponses converts a slice of domain movements.
func ToMovementResponses(ms []domain.Movement) []MovementResponse {
	res := make([]MovementResponse, len(ms))
	for i := range ms {
		res[i] = ToMovementResponse(&ms[i])
	}
	return res
}
