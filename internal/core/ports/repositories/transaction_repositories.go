package repositories

import (
	"context"
	"time"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// ListTransactionsFilter narrows a transaction listing. Zero values mean "no
// filter" for the respective field.
type ListTransactionsFilter struct {
	Type       *domain.TransactionType
	Status     *domain.TransactionStatus
	CategoryID *string
	CompanyID  *string
	PatientID  *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string // Free-text match on reference code / description
	Skip       int
	Limit      int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its payments.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of transactions, newest
	// first, along with the total count matching the filter.
	ListTransactions(ctx context.Context, filter ListTransactionsFilter) ([]domain.Transaction, int, error)

	// ListOverdue retrieves pending transactions whose due date has passed as
	// of the given instant, oldest debt first.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines the atomic write operations of the transaction
// ledger. Each call is a single all-or-nothing unit: transaction row,
// payment rows, movement rows and cached balances commit together or not at
// all.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and, for a directly
	// completed one, its payments and their settlement movements.
	SaveTransaction(ctx context.Context, txn domain.Transaction, movements []domain.Movement) error

	// SettleTransaction transitions a pending transaction to completed,
	// persisting payments and posting their movements.
	SettleTransaction(ctx context.Context, txn domain.Transaction, payments []domain.Payment, movements []domain.Movement) error

	// CancelTransaction marks the transaction cancelled and posts the given
	// reversing movements (empty for a pending transaction). The update only
	// applies while the row still has expectedStatus, the status the caller
	// built the reversing movements from; any other status is ErrConflict.
	CancelTransaction(ctx context.Context, transactionID string, expectedStatus domain.TransactionStatus, reversingMovements []domain.Movement, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
