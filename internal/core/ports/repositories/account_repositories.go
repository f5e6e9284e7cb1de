package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs
	// are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts ordered by name. Inactive accounts are
	// included only when includeInactive is set.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account. When openingMovement is non-nil it
	// is written in the same database transaction so the balance invariant
	// holds from the account's first instant.
	SaveAccount(ctx context.Context, account domain.Account, openingMovement *domain.Movement) error

	// DeactivateAccount flips is_active to false. The caller is responsible
	// for the zero-balance check.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountLocker exposes the in-transaction primitives every money-moving
// write path goes through: lock the affected rows in a fixed global order,
// then apply balance deltas under those locks.
type AccountLocker interface {
	// FindAccountsByIDsForUpdate locks the given account rows FOR UPDATE,
	// always in ascending account_id order to prevent lock-order deadlocks.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx adjusts cached balances for the locked accounts.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLocker
}
