package repositories

import (
	"context"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// TransferRepositoryFacade persists transfers and their paired movements.
type TransferRepositoryFacade interface {
	// SaveTransfer writes the transfer row and both movement legs in one
	// atomic unit. No partial transfer is ever observable.
	SaveTransfer(ctx context.Context, transfer domain.Transfer, out domain.Movement, in domain.Movement) (*domain.Movement, *domain.Movement, error)

	// FindTransferByID retrieves a transfer by its ID.
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)
}
