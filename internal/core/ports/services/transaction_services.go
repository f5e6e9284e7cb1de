package services

import (
	"context"
	"time"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/klinikore/klinik-ledger/internal/dto"
)

// TransactionReaderSvc defines read operations for the transaction ledger.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its payments.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page plus the total match count.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetOverdue retrieves pending transactions past due as of the given
	// instant, oldest debt first, with debtor names resolved from the
	// patient directory.
	GetOverdue(ctx context.Context, asOf time.Time) ([]dto.OverdueTransactionResponse, error)
}

// TransactionWriterSvc defines the money-moving operations of the ledger.
type TransactionWriterSvc interface {
	// CreateTransaction creates a completed transaction (payments summing to
	// the net amount, movements posted) or a pending one (no payments, due
	// date set).
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// SettlePending transitions a pending transaction to completed,
	// posting the settlement movements.
	SettlePending(ctx context.Context, transactionID string, req dto.SettleTransactionRequest, userID string) (*domain.Transaction, error)

	// CancelTransaction cancels a transaction, posting offsetting movements
	// for one that had already completed.
	CancelTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
