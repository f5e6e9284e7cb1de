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
	"github.com/klinikore/klinik-ledger/internal/middleware"
)

var ErrSameAccountTransfer = errors.New("source and destination accounts must differ")

// transferService moves funds between internal accounts. A transfer is the
// only operation that writes two movements at once; the repository commits
// both legs and both balance updates in one unit.
type transferService struct {
	transferRepo portsrepo.TransferRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
}

// NewTransferService creates a new transfer service.
func NewTransferService(transferRepo portsrepo.TransferRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, movementRepo portsrepo.MovementRepositoryFacade) portssvc.TransferSvcFacade {
	return &transferService{transferRepo: transferRepo, accountRepo: accountRepo, movementRepo: movementRepo}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer atomically debits the source account and credits the destination.
func (s *transferService) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, note string, userID string) (*domain.Transfer, *domain.Movement, *domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if fromAccountID == toAccountID {
		return nil, nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrSameAccountTransfer)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{fromAccountID, toAccountID})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch transfer accounts: %w", err)
	}
	for _, id := range []string{fromAccountID, toAccountID} {
		acc, found := accounts[id]
		if !found {
			return nil, nil, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return nil, nil, nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	now := time.Now().UTC()
	transferID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	transfer := domain.Transfer{
		TransferID:    transferID,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Note:          note,
		OccurredAt:    now,
		AuditFields:   audit,
	}

	description := note
	if description == "" {
		description = fmt.Sprintf("Transfer %s -> %s", accounts[fromAccountID].Name, accounts[toAccountID].Name)
	}

	out := domain.Movement{
		MovementID:  uuid.NewString(),
		AccountID:   fromAccountID,
		Direction:   domain.Out,
		Amount:      amount,
		Description: description,
		OccurredAt:  now,
		TransferID:  &transfer.TransferID,
		AuditFields: audit,
	}
	in := domain.Movement{
		MovementID:  uuid.NewString(),
		AccountID:   toAccountID,
		Direction:   domain.In,
		Amount:      amount,
		Description: description,
		OccurredAt:  now,
		TransferID:  &transfer.TransferID,
		AuditFields: audit,
	}

	savedOut, savedIn, err := s.transferRepo.SaveTransfer(ctx, transfer, out, in)
	if err != nil {
		logger.Error("Failed to save transfer",
			slog.String("error", err.Error()),
			slog.String("from_account_id", fromAccountID),
			slog.String("to_account_id", toAccountID))
		return nil, nil, nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Transfer completed",
		slog.String("transfer_id", transferID),
		slog.String("from_account_id", fromAccountID),
		slog.String("to_account_id", toAccountID),
		slog.String("amount", amount.String()))
	return &transfer, savedOut, savedIn, nil
}

// GetTransferByID retrieves a transfer with its two movement legs.
func (s *transferService) GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, *domain.Movement, *domain.Movement, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, nil, nil, err
	}

	legs, err := s.movementRepo.FindMovementsByTransferID(ctx, transferID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch movements for transfer %s: %w", transferID, err)
	}

	var out, in *domain.Movement
	for i := range legs {
		if legs[i].Direction == domain.Out {
			out = &legs[i]
		} else {
			in = &legs[i]
		}
	}
	if out == nil || in == nil {
		return nil, nil, nil, fmt.Errorf("transfer %s has %d movements, expected an out and an in leg", transferID, len(legs))
	}

	return transfer, out, in, nil
}
