package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/dto"
	"github.com/klinikore/klinik-ledger/internal/middleware"
)

// accountService manages the account store: named money containers whose
// balances only ever change through movement writes.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, movementRepo portsrepo.MovementRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account. A nonzero opening balance becomes the
// account's first movement, written in the same atomic unit as the account
// row, so balance == sum(movements) holds from birth. A zero opening balance
// produces no movement at all.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
	}
	if !domain.ValidKind(req.Kind) {
		return nil, fmt.Errorf("%w: unrecognized account kind %q", apperrors.ErrValidation, req.Kind)
	}

	now := time.Now().UTC()
	accountID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	account := domain.Account{
		AccountID:    accountID,
		Name:         req.Name,
		Kind:         req.Kind,
		CurrencyCode: req.Currency,
		BankName:     req.BankName,
		IsActive:     true,
		Balance:      req.OpeningBalance,
		AuditFields:  audit,
	}

	var opening *domain.Movement
	if !req.OpeningBalance.IsZero() {
		direction := domain.In
		amount := req.OpeningBalance
		if req.OpeningBalance.IsNegative() {
			direction = domain.Out
			amount = req.OpeningBalance.Neg()
		}
		opening = &domain.Movement{
			MovementID:       uuid.NewString(),
			AccountID:        accountID,
			Direction:        direction,
			Amount:           amount,
			ResultingBalance: req.OpeningBalance,
			Description:      "Opening balance",
			OccurredAt:       now,
			AuditFields:      audit,
		}
	}

	if err := s.accountRepo.SaveAccount(ctx, account, opening); err != nil {
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", accountID), slog.String("kind", string(req.Kind)))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves accounts ordered by name.
func (s *accountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, includeInactive)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// ListMovements retrieves a page of an account's movement log, newest first.
func (s *accountService) ListMovements(ctx context.Context, accountID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// The account must exist; an empty log on an existing account is a valid
	// empty result, a missing account is an error.
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	movements, nextToken, err := s.movementRepo.ListMovementsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list movements", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve movements: %w", err)
	}

	return &dto.ListMovementsResponse{
		Movements: dto.ToMovementResponses(movements),
		NextToken: nextToken,
	}, nil
}

// DeactivateAccount soft-deactivates an account. An account still holding
// funds (positive or negative) is refused; it must be emptied via transfer
// first so no money silently disappears from the books.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, accountID)
	}
	if !account.Balance.Equal(decimal.Zero) {
		return fmt.Errorf("%w: account %s holds a balance of %s, transfer it out before deactivating", apperrors.ErrConflict, accountID, account.Balance.String())
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
