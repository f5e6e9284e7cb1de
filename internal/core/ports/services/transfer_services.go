package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// TransferSvcFacade moves funds between accounts.
type TransferSvcFacade interface {
	// Transfer atomically debits the source and credits the destination,
	// returning the transfer and its two movement legs.
	Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, note string, userID string) (*domain.Transfer, *domain.Movement, *domain.Movement, error)

	// GetTransferByID retrieves a transfer with its out and in movement legs.
	GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, *domain.Movement, *domain.Movement, error)
}
