package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	"github.com/klinikore/klinik-ledger/internal/models"
	"github.com/klinikore/klinik-ledger/internal/utils/mapping"
)

const transferColumns = `transfer_id, from_account_id, to_account_id, amount, note, occurred_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransferRepository struct {
	BaseRepository
	accountRepo  portsrepo.AccountRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
}

// newPgxTransferRepository creates a new repository for transfer data.
func newPgxTransferRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, movementRepo portsrepo.MovementRepositoryFacade) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		movementRepo:   movementRepo,
	}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

// SaveTransfer writes the transfer row and both movement legs in one atomic
// unit: lock both accounts in ascending ID order, apply both balance deltas,
// then append both movements. No partial transfer is ever observable.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer, out domain.Movement, in domain.Movement) (*domain.Movement, *domain.Movement, error) {
	modelTr := mapping.ToModelTransfer(transfer)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		modelTr.TransferID,
		modelTr.FromAccountID,
		modelTr.ToAccountID,
		modelTr.Amount,
		modelTr.Note,
		modelTr.OccurredAt,
		modelTr.CreatedAt,
		modelTr.CreatedBy,
		modelTr.LastUpdatedAt,
		modelTr.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, nil, fmt.Errorf("%w: transfer %s already exists", apperrors.ErrDuplicate, modelTr.TransferID)
			case "23503":
				return nil, nil, fmt.Errorf("%w: transfer references a missing account", apperrors.ErrNotFound)
			}
		}
		return nil, nil, classifyError(fmt.Errorf("failed to insert transfer %s: %w", modelTr.TransferID, err))
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{transfer.FromAccountID, transfer.ToAccountID})
	if err != nil {
		return nil, nil, err
	}

	changes := map[string]decimal.Decimal{
		out.AccountID: out.SignedAmount(),
		in.AccountID:  in.SignedAmount(),
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, changes, transfer.CreatedBy, transfer.CreatedAt); err != nil {
		return nil, nil, err
	}

	saved, err := r.movementRepo.AppendMovementsInTx(ctx, tx, lockedAccounts, []domain.Movement{out, in})
	if err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	var savedOut, savedIn *domain.Movement
	for i := range saved {
		if saved[i].Direction == domain.Out {
			savedOut = &saved[i]
		} else {
			savedIn = &saved[i]
		}
	}
	return savedOut, savedIn, nil
}

// FindTransferByID retrieves a transfer by its ID.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1;`

	var m models.Transfer
	err := r.Pool.QueryRow(ctx, query, transferID).Scan(
		&m.TransferID,
		&m.FromAccountID,
		&m.ToAccountID,
		&m.Amount,
		&m.Note,
		&m.OccurredAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)
		}
		return nil, fmt.Errorf("failed to find transfer by ID %s: %w", transferID, err)
	}

	domainTr := mapping.ToDomainTransfer(m)
	return &domainTr, nil
}
