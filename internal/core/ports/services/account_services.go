package services

import (
	"context"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/klinikore/klinik-ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves accounts, optionally including deactivated ones.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)

	// ListMovements retrieves a page of an account's movements, newest first.
	ListMovements(ctx context.Context, accountID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount creates a new account, posting an opening movement when
	// the opening balance is nonzero.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// DeactivateAccount soft-deactivates an emptied account. Accounts holding
	// a nonzero balance are refused so no funds silently disappear.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
