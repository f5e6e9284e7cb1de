package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// MovementReader defines read operations over the append-only movement log.
type MovementReader interface {
	// ListMovementsByAccountID retrieves a page of an account's movements,
	// newest first, using token-based pagination.
	ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error)

	// FindMovementsByTransactionID retrieves every movement a transaction has
	// posted, oldest first. Used when cancelling a completed transaction.
	FindMovementsByTransactionID(ctx context.Context, transactionID string) ([]domain.Movement, error)

	// FindMovementsByTransferID retrieves the two legs of a transfer.
	FindMovementsByTransferID(ctx context.Context, transferID string) ([]domain.Movement, error)
}

// MovementAppender is the single write primitive of the movement log. It is
// only ever called inside a database transaction that already holds FOR
// UPDATE locks on the affected accounts; resulting balances are computed from
// the locked balances, and the accounts' cached balances are updated in the
// same unit.
type MovementAppender interface {
	AppendMovementsInTx(ctx context.Context, tx pgx.Tx, lockedAccounts map[string]domain.Account, movements []domain.Movement) ([]domain.Movement, error)
}

// MovementRepositoryFacade combines all movement repository interfaces.
type MovementRepositoryFacade interface {
	MovementReader
	MovementAppender
}
